package markdown

// LinkKind classifies an extracted link.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
	LinkKindWiki                LinkKind = "wiki" // [[Note]] / [[Note|alias]] / ![[embed]]
)

type Link struct {
	Kind        LinkKind
	Destination string
}
