package domain

import "encoding/json"

// Packument is the registry's metadata document for one package name: every
// known version plus package-level fields. Instances are immutable once
// decoded and are shared by reference between the cache and callers; nothing
// mutates a packument after construction.
type Packument struct {
	Name     string
	DistTags map[string]string
	Versions map[string]VersionMetadata

	// Extra holds registry-supplied fields this layer does not interpret.
	Extra map[string]json.RawMessage
}

// VersionMetadata is one version's manifest inside a packument.
type VersionMetadata struct {
	Name         string
	Version      string
	Dependencies map[string]string
	Dist         Dist

	Extra map[string]json.RawMessage
}

// Dist locates a version's distributable archive.
type Dist struct {
	Tarball   string `json:"tarball"`
	Shasum    string `json:"shasum,omitempty"`
	Integrity string `json:"integrity,omitempty"`
}

func (p *Packument) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		var err error
		switch key {
		case "name":
			err = json.Unmarshal(raw, &p.Name)
		case "dist-tags":
			err = json.Unmarshal(raw, &p.DistTags)
		case "versions":
			err = json.Unmarshal(raw, &p.Versions)
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]json.RawMessage)
			}
			p.Extra[key] = raw
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p Packument) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(p.Extra)+3)
	for key, raw := range p.Extra {
		fields[key] = raw
	}
	if err := marshalInto(fields, "name", p.Name); err != nil {
		return nil, err
	}
	if p.DistTags != nil {
		if err := marshalInto(fields, "dist-tags", p.DistTags); err != nil {
			return nil, err
		}
	}
	if p.Versions != nil {
		if err := marshalInto(fields, "versions", p.Versions); err != nil {
			return nil, err
		}
	}
	return json.Marshal(fields)
}

func (m *VersionMetadata) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		var err error
		switch key {
		case "name":
			err = json.Unmarshal(raw, &m.Name)
		case "version":
			err = json.Unmarshal(raw, &m.Version)
		case "dependencies":
			err = json.Unmarshal(raw, &m.Dependencies)
		case "dist":
			err = json.Unmarshal(raw, &m.Dist)
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]json.RawMessage)
			}
			m.Extra[key] = raw
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m VersionMetadata) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(m.Extra)+4)
	for key, raw := range m.Extra {
		fields[key] = raw
	}
	if err := marshalInto(fields, "name", m.Name); err != nil {
		return nil, err
	}
	if err := marshalInto(fields, "version", m.Version); err != nil {
		return nil, err
	}
	if m.Dependencies != nil {
		if err := marshalInto(fields, "dependencies", m.Dependencies); err != nil {
			return nil, err
		}
	}
	if err := marshalInto(fields, "dist", m.Dist); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

func marshalInto(fields map[string]json.RawMessage, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fields[key] = raw
	return nil
}
