package workflowy

import "encoding/json"

// InitData is the payload returned by the get_initialization_data endpoint.
// Only projectTreeData is interpreted; everything else rides along in Extra.
type InitData struct {
	ProjectTreeData ProjectTreeData `json:"projectTreeData"`

	Extra map[string]json.RawMessage `json:"-"`
}

// ProjectTreeData groups the user's main tree with the trees shared into it.
type ProjectTreeData struct {
	MainProjectTreeInfo       MainTreeInfo  `json:"mainProjectTreeInfo"`
	AuxiliaryProjectTreeInfos []AuxTreeInfo `json:"auxiliaryProjectTreeInfos"`
	ClientID                  string        `json:"clientId"`

	Extra map[string]json.RawMessage `json:"-"`
}

// MainTreeInfo describes the account's own tree. RootProject is null for
// the account root; its top-level bullets are in RootProjectChildren.
type MainTreeInfo struct {
	RootProject                  *Node   `json:"rootProject"`
	RootProjectChildren          []*Node `json:"rootProjectChildren"`
	DateJoinedTimestampInSeconds int64   `json:"dateJoinedTimestampInSeconds"`

	Extra map[string]json.RawMessage `json:"-"`
}

// AuxTreeInfo describes a shared or team tree. The payload carries the root
// node and its children separately.
type AuxTreeInfo struct {
	RootProject         *Node   `json:"rootProject"`
	RootProjectChildren []*Node `json:"rootProjectChildren"`
	ShareID             string  `json:"shareId,omitempty"`
	ShareType           string  `json:"shareType,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Root returns a new node combining the tree's root with its children.
// The payload's own root node is left untouched.
func (a *AuxTreeInfo) Root() *Node {
	if a.RootProject == nil {
		return &Node{Children: a.RootProjectChildren}
	}
	root := *a.RootProject
	root.Children = a.RootProjectChildren
	return &root
}

var (
	initDataKeys        = []string{"projectTreeData"}
	projectTreeDataKeys = []string{"mainProjectTreeInfo", "auxiliaryProjectTreeInfos", "clientId"}
	mainTreeInfoKeys    = []string{"rootProject", "rootProjectChildren", "dateJoinedTimestampInSeconds"}
	auxTreeInfoKeys     = []string{"rootProject", "rootProjectChildren", "shareId", "shareType"}
)

// UnmarshalJSON implements json.Unmarshaler.
func (d *InitData) UnmarshalJSON(data []byte) error {
	type plain InitData
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := extraFields(data, initDataKeys)
	if err != nil {
		return err
	}
	*d = InitData(decoded)
	d.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d InitData) MarshalJSON() ([]byte, error) {
	type plain InitData
	return marshalWithExtra(plain(d), d.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ProjectTreeData) UnmarshalJSON(data []byte) error {
	type plain ProjectTreeData
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := extraFields(data, projectTreeDataKeys)
	if err != nil {
		return err
	}
	*p = ProjectTreeData(decoded)
	p.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p ProjectTreeData) MarshalJSON() ([]byte, error) {
	type plain ProjectTreeData
	return marshalWithExtra(plain(p), p.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MainTreeInfo) UnmarshalJSON(data []byte) error {
	type plain MainTreeInfo
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := extraFields(data, mainTreeInfoKeys)
	if err != nil {
		return err
	}
	*m = MainTreeInfo(decoded)
	m.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m MainTreeInfo) MarshalJSON() ([]byte, error) {
	type plain MainTreeInfo
	return marshalWithExtra(plain(m), m.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AuxTreeInfo) UnmarshalJSON(data []byte) error {
	type plain AuxTreeInfo
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := extraFields(data, auxTreeInfoKeys)
	if err != nil {
		return err
	}
	*a = AuxTreeInfo(decoded)
	a.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a AuxTreeInfo) MarshalJSON() ([]byte, error) {
	type plain AuxTreeInfo
	return marshalWithExtra(plain(a), a.Extra)
}
