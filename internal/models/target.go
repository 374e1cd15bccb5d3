package models

// ExtractionMode selects how a target's content region is pulled out of the page.
type ExtractionMode string

const (
	// ModeHTMLElement locates a server-rendered element in the page.
	ModeHTMLElement ExtractionMode = "html_element"
	// ModeScriptPayload pulls the news object literal out of a script resource.
	ModeScriptPayload ExtractionMode = "script_payload"
)

// PayloadSubtype distinguishes where the script payload lives.
type PayloadSubtype string

const (
	// PayloadDirect means the target URL itself carries the payload.
	PayloadDirect PayloadSubtype = "direct"
	// PayloadIndirect means the target URL is a loader page naming a versioned asset.
	PayloadIndirect PayloadSubtype = "indirect"
)

// Selector identifies an HTML element. Empty Class or ID match anything.
type Selector struct {
	Tag   string `json:"tag" yaml:"tag"`
	Class string `json:"class,omitempty" yaml:"class,omitempty"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
}

// IsZero reports whether no selector was configured.
func (s Selector) IsZero() bool {
	return s.Tag == "" && s.Class == "" && s.ID == ""
}

// Target is one watched page, loaded once per run and never modified.
type Target struct {
	Name           string            `json:"name" yaml:"name" validate:"required"`
	URL            string            `json:"url" yaml:"url" validate:"required,absurl"`
	Mode           ExtractionMode    `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,extractionmode"`
	Selector       Selector          `json:"selector,omitempty" yaml:"selector,omitempty"`
	PayloadSubtype PayloadSubtype    `json:"payload_subtype,omitempty" yaml:"payload_subtype,omitempty" validate:"omitempty,payloadsubtype"`
	AssetPattern   string            `json:"asset_pattern,omitempty" yaml:"asset_pattern,omitempty" validate:"omitempty,regexp"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// EffectiveMode returns the configured mode, defaulting to ModeHTMLElement.
func (t Target) EffectiveMode() ExtractionMode {
	if t.Mode == "" {
		return ModeHTMLElement
	}
	return t.Mode
}

// EffectiveSubtype returns the configured payload subtype, defaulting to PayloadDirect.
func (t Target) EffectiveSubtype() PayloadSubtype {
	if t.PayloadSubtype == "" {
		return PayloadDirect
	}
	return t.PayloadSubtype
}
