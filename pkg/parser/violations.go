package parser

import (
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ViolationKind is a coarse classification of a schema violation, used
// by span-aware resolvers to pick a better highlight. It is derived from
// the validator's message, so unknown shapes fall back to KindGeneric.
type ViolationKind string

const (
	KindGeneric              ViolationKind = ""
	KindType                 ViolationKind = "type"
	KindRequired             ViolationKind = "required"
	KindAdditionalProperties ViolationKind = "additionalProperties"
)

// Violation is a single schema constraint failure.
type Violation struct {
	Pointer  string   // RFC 6901 pointer to the offending instance node
	Segments []string // decoded pointer segments
	Message  string   // validator's human-readable description
	Kind     ViolationKind
	Property string // offending or missing property name, when derivable
}

// ExtractViolations flattens a jsonschema validation error into the list
// of leaf violations, in the validator's enumeration order. The order is
// implementation-defined but stable for a given schema and input. A nil
// or foreign error yields no violations.
func ExtractViolations(err error) []Violation {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil
	}

	var violations []Violation
	collectLeaves(verr, &violations)
	return violations
}

// collectLeaves walks the cause tree depth-first. Interior nodes only
// restate their children, so just the leaves become violations.
func collectLeaves(verr *jsonschema.ValidationError, out *[]Violation) {
	if len(verr.Causes) == 0 {
		*out = append(*out, newViolation(verr))
		return
	}
	for _, cause := range verr.Causes {
		collectLeaves(cause, out)
	}
}

func newViolation(verr *jsonschema.ValidationError) Violation {
	segments := make([]string, len(verr.InstanceLocation))
	copy(segments, verr.InstanceLocation)

	message := cleanMessage(verr.Error())
	kind, property := classifyMessage(message)

	return Violation{
		Pointer:  JoinPointer(segments),
		Segments: segments,
		Message:  message,
		Kind:     kind,
		Property: property,
	}
}

var atPrefixRe = regexp.MustCompile(`^- at '[^']*': `)

// cleanMessage strips the "jsonschema validation failed" header and
// "- at '<path>': " prefixes the validator puts in front of error
// descriptions; the pointer is carried separately, so repeating it in
// the message is noise.
func cleanMessage(message string) string {
	var cleaned []string
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		cleaned = append(cleaned, atPrefixRe.ReplaceAllString(line, ""))
	}
	result := strings.Join(cleaned, "\n")
	if strings.TrimSpace(result) == "" {
		return "schema validation failed"
	}
	return result
}

var (
	additionalPropsRe = regexp.MustCompile(`additional propert(?:y|ies) (.+?) not allowed`)
	missingPropsRe    = regexp.MustCompile(`missing propert(?:y|ies) (.+)`)
	typeMismatchRe    = regexp.MustCompile(`got (\S+), want `)
	quotedNameRe      = regexp.MustCompile(`'([^']+)'`)
)

// classifyMessage derives a violation kind, and the property it concerns,
// from the validator's message text.
func classifyMessage(message string) (ViolationKind, string) {
	if m := additionalPropsRe.FindStringSubmatch(message); len(m) > 1 {
		if names := quotedNames(m[1]); len(names) > 0 {
			return KindAdditionalProperties, names[0]
		}
		return KindAdditionalProperties, ""
	}
	if m := missingPropsRe.FindStringSubmatch(message); len(m) > 1 {
		if names := quotedNames(m[1]); len(names) > 0 {
			return KindRequired, names[0]
		}
		return KindRequired, ""
	}
	if typeMismatchRe.MatchString(message) {
		return KindType, ""
	}
	return KindGeneric, ""
}

// quotedNames extracts 'quoted' names from a message fragment, e.g.
// "'invalid_prop', 'another'" -> ["invalid_prop", "another"].
func quotedNames(fragment string) []string {
	var names []string
	for _, m := range quotedNameRe.FindAllStringSubmatch(fragment, -1) {
		if len(m) > 1 && strings.TrimSpace(m[1]) != "" {
			names = append(names, strings.TrimSpace(m[1]))
		}
	}
	return names
}
