package atom

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/depdot/pkg/errors"
)

// Op is the version operator of an atom.
type Op int

const (
	OpNone Op = iota
	OpLess
	OpLessEqual
	OpEqual
	OpGlob // "=" with a trailing "*" on the version
	OpDropRevision
	OpGreaterEqual
	OpGreater
)

var opStrings = [...]string{
	OpNone:         "",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpEqual:        "=",
	OpGlob:         "=*",
	OpDropRevision: "~",
	OpGreaterEqual: ">=",
	OpGreater:      ">",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opStrings) {
		return "op(" + strconv.Itoa(int(o)) + ")"
	}
	return opStrings[o]
}

// Atom is a parsed package dependency specification.
type Atom struct {
	// Blocks is set for "!" and "!!" atoms; BlocksStrongly only for "!!".
	Blocks         bool
	BlocksStrongly bool

	Op       Op
	Category string
	Package  string
	// Version and Revision are empty when Op is OpNone.
	Version  string
	Revision string

	// Slots are sorted. Repo is empty when no "::repo" part was given.
	Slots []string
	Repo  string
	// Use holds the raw use flags, sorted. Transitive is set when a flag
	// ends in "?" or "=".
	Use        []string
	Transitive bool
}

// Key returns "category/package".
func (a *Atom) Key() string { return a.Category + "/" + a.Package }

// Fullver returns the version with its "-rN" revision, if any.
func (a *Atom) Fullver() string {
	if a.Revision == "" {
		return a.Version
	}
	return a.Version + "-r" + a.Revision
}

// CPV returns "category/package" or "category/package-fullver".
func (a *Atom) CPV() string {
	if a.Version == "" {
		return a.Key()
	}
	return a.Key() + "-" + a.Fullver()
}

// String returns the canonical form of the atom. Parsing it again yields an
// equal atom.
func (a *Atom) String() string {
	var sb strings.Builder
	switch {
	case a.BlocksStrongly:
		sb.WriteString("!!")
	case a.Blocks:
		sb.WriteString("!")
	}
	if a.Op == OpGlob {
		sb.WriteString("=")
	} else {
		sb.WriteString(a.Op.String())
	}
	sb.WriteString(a.CPV())
	if a.Op == OpGlob {
		sb.WriteString("*")
	}
	if len(a.Slots) > 0 {
		sb.WriteString(":")
		sb.WriteString(strings.Join(a.Slots, ","))
	}
	if a.Repo != "" {
		sb.WriteString("::")
		sb.WriteString(a.Repo)
	}
	if len(a.Use) > 0 {
		sb.WriteString("[")
		sb.WriteString(strings.Join(a.Use, ","))
		sb.WriteString("]")
	}
	return sb.String()
}

// Unrestricted is the EAPI value that allows every atom feature.
const Unrestricted = -1

type options struct {
	eapi int
}

// Option configures [Parse].
type Option func(*options)

// WithEAPI restricts parsing to the features of the given EAPI. EAPI 0 has
// no slot, repo or use deps, EAPI 1 has no use deps, and any explicit EAPI
// forbids repo deps and multiple slots. "!!" needs EAPI 2 or later.
func WithEAPI(eapi int) Option {
	return func(o *options) { o.eapi = eapi }
}

var (
	categoryRe = regexp.MustCompile(`^[A-Za-z0-9_+][A-Za-z0-9_+.-]*$`)
	packageRe  = regexp.MustCompile(`^[A-Za-z0-9_+][A-Za-z0-9_+-]*$`)

	versionPattern = `\d+(?:\.\d+)*[a-z]?(?:(?:_alpha|_beta|_pre|_rc|_p)\d*)*`
	versionRe      = regexp.MustCompile(`^` + versionPattern + `$`)
	versionedRe    = regexp.MustCompile(`^(.+)-(` + versionPattern + `)(?:-r(\d+))?$`)
	versionTailRe  = regexp.MustCompile(`-` + versionPattern + `(?:-r\d+)?$`)
)

// Parse parses a dependency atom:
//
//	[!|!!][op]category/package[-version[-rN]][*][:slot[,slot]][::repo][[use,...]]
//
// All failures are MALFORMED_ATOM errors naming the atom and the reason.
func Parse(s string, opts ...Option) (*Atom, error) {
	o := options{eapi: Unrestricted}
	for _, opt := range opts {
		opt(&o)
	}
	p := &parser{raw: s, rest: s, eapi: o.eapi}
	return p.parse()
}

// MustParse is like [Parse] but panics on error.
func MustParse(s string, opts ...Option) *Atom {
	a, err := Parse(s, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

type parser struct {
	raw  string
	rest string
	eapi int
}

func (p *parser) fail(format string, args ...any) error {
	return errors.New(errors.ErrCodeMalformedAtom, "%q: "+format, append([]any{p.raw}, args...)...)
}

func (p *parser) peek() byte {
	if p.rest == "" {
		return 0
	}
	return p.rest[0]
}

func (p *parser) skip(n int) { p.rest = p.rest[n:] }

func (p *parser) parse() (*Atom, error) {
	if p.raw == "" {
		return nil, p.fail("empty atom")
	}
	a := &Atom{}

	if p.peek() == '!' {
		a.Blocks = true
		p.skip(1)
		// EAPI 0 and 1 leave the second "!" in place, which then fails as
		// part of the category.
		if p.peek() == '!' && p.eapi != 0 && p.eapi != 1 {
			a.BlocksStrongly = true
			p.skip(1)
		}
	}

	a.Op = p.parseOp()

	end := strings.IndexAny(p.rest, ":[")
	if end < 0 {
		end = len(p.rest)
	}
	cpv := p.rest[:end]
	p.skip(end)

	if err := p.parseSlotAndRepo(a); err != nil {
		return nil, err
	}
	if p.peek() == '[' {
		p.skip(1)
		if err := p.parseUse(a); err != nil {
			return nil, err
		}
	}
	if p.rest != "" {
		return nil, p.fail("trailing garbage detected: %q", p.rest)
	}

	if a.Op == OpEqual && len(cpv) > 1 && strings.HasSuffix(cpv, "*") {
		a.Op = OpGlob
		cpv = cpv[:len(cpv)-1]
	}
	if err := p.parseCPV(a, cpv); err != nil {
		return nil, err
	}
	if a.Op == OpDropRevision && a.Revision != "" {
		return nil, p.fail("revision isn't allowed with '~' operator")
	}
	if err := p.checkEAPI(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (p *parser) parseOp() Op {
	switch {
	case strings.HasPrefix(p.rest, "<="):
		p.skip(2)
		return OpLessEqual
	case strings.HasPrefix(p.rest, ">="):
		p.skip(2)
		return OpGreaterEqual
	}
	switch p.peek() {
	case '<':
		p.skip(1)
		return OpLess
	case '>':
		p.skip(1)
		return OpGreater
	case '=':
		p.skip(1)
		return OpEqual
	case '~':
		p.skip(1)
		return OpDropRevision
	}
	return OpNone
}

func (p *parser) parseSlotAndRepo(a *Atom) error {
	if p.peek() != ':' {
		return nil
	}
	p.skip(1)

	switch p.peek() {
	case '[':
		return p.fail("empty slot restriction isn't allowed")
	case ':':
		p.skip(1)
		return p.parseRepo(a)
	}

	end := strings.IndexAny(p.rest, ":[")
	if end < 0 {
		end = len(p.rest)
	}
	slots, err := p.parseSlots(p.rest[:end])
	if err != nil {
		return err
	}
	a.Slots = slots
	p.skip(end)

	if p.peek() == ':' {
		if !strings.HasPrefix(p.rest, "::") {
			return p.fail("you can specify only one slot restriction")
		}
		p.skip(2)
		return p.parseRepo(a)
	}
	return nil
}

func (p *parser) parseSlots(s string) ([]string, error) {
	slots := strings.Split(s, ",")
	for _, slot := range slots {
		if slot == "" {
			return nil, p.fail("invalid slot dep; all slots must be non empty")
		}
		if slot[0] == '-' || slot[0] == '.' {
			return nil, p.fail("invalid first char of slot dep; must not be '-' or '.'")
		}
		for i := 0; i < len(slot); i++ {
			if !validSlotChar(slot[i]) {
				return nil, p.fail("invalid char in slot dep; each flag must be a-Z0-9_.-+")
			}
		}
	}
	slices.Sort(slots)
	return slots, nil
}

func (p *parser) parseRepo(a *Atom) error {
	end := strings.IndexByte(p.rest, '[')
	if end < 0 {
		end = len(p.rest)
	}
	repo := p.rest[:end]
	if repo == "" {
		return p.fail("repo_id must not be empty")
	}
	if repo[0] == '-' {
		return p.fail("invalid first char of repo_id: must not be '-'")
	}
	for i := 0; i < len(repo); i++ {
		if !validRepoChar(repo[i]) {
			return p.fail("invalid char in repo_id: valid characters are [a-Z0-9_-/]")
		}
	}
	a.Repo = repo
	p.skip(end)
	return nil
}

func (p *parser) parseUse(a *Atom) error {
	end := strings.IndexByte(p.rest, ']')
	if end < 0 {
		return p.fail("unclosed use dep")
	}
	flags := strings.Split(p.rest[:end], ",")
	for _, flag := range flags {
		name := flag
		if len(name) > 1 {
			if name[0] == '-' {
				name = name[1:]
			} else if last := name[len(name)-1]; last == '?' || last == '=' {
				name = name[:len(name)-1]
				if len(name) > 1 && name[0] == '!' {
					name = name[1:]
				}
				a.Transitive = true
			}
		}
		if name == "" {
			return p.fail("empty use flag detected")
		}
		if !isAlnum(name[0]) {
			return p.fail("first char of a use flag must be alphanumeric")
		}
		for i := 0; i < len(name); i++ {
			if !validUseChar(name[i]) {
				return p.fail("invalid char in use dep; each flag must be a-Z0-9_@-+")
			}
		}
	}
	slices.Sort(flags)
	a.Use = flags
	p.skip(end + 1)
	return nil
}

func (p *parser) parseCPV(a *Atom, cpv string) error {
	cat, pkg, ok := strings.Cut(cpv, "/")
	if !ok || strings.Contains(pkg, "/") {
		return p.fail("invalid cpv %q: expected category/package", cpv)
	}
	if !categoryRe.MatchString(cat) {
		return p.fail("invalid category %q", cat)
	}

	if a.Op != OpNone {
		m := versionedRe.FindStringSubmatch(pkg)
		if m == nil {
			return p.fail("invalid cpv %q: missing or invalid version", cpv)
		}
		pkg, a.Version, a.Revision = m[1], m[2], m[3]
	}
	if !packageRe.MatchString(pkg) || versionTailRe.MatchString(pkg) {
		if a.Op == OpNone && versionTailRe.MatchString(pkg) {
			return p.fail("invalid package %q: versioned atom requires an operator", pkg)
		}
		return p.fail("invalid package %q", pkg)
	}
	a.Category, a.Package = cat, pkg
	return nil
}

func (p *parser) checkEAPI(a *Atom) error {
	switch p.eapi {
	case 0:
		switch {
		case a.Use != nil:
			return p.fail("use deps aren't allowed in EAPI 0")
		case a.Slots != nil:
			return p.fail("slot deps aren't allowed in EAPI 0")
		case a.Repo != "":
			return p.fail("repository deps aren't allowed in EAPI 0")
		}
	case 1:
		if a.Use != nil {
			return p.fail("use deps aren't allowed in EAPI 1")
		}
	}
	if p.eapi != Unrestricted {
		if a.Repo != "" {
			return p.fail("repository deps aren't allowed in EAPI %d", p.eapi)
		}
		if len(a.Slots) > 1 {
			return p.fail("multiple slot deps aren't allowed in EAPI %d", p.eapi)
		}
	}
	return nil
}

// ValidVersion reports whether v is a well-formed version without revision.
func ValidVersion(v string) bool { return versionRe.MatchString(v) }

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func validSlotChar(c byte) bool {
	return isAlnum(c) || c == '-' || c == '_' || c == '.' || c == '+'
}

func validUseChar(c byte) bool {
	return isAlnum(c) || c == '-' || c == '_' || c == '@' || c == '+'
}

func validRepoChar(c byte) bool {
	return isAlnum(c) || c == '-' || c == '_' || c == '/'
}
