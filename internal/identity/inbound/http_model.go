package inbound

type DeriveResponse struct {
	ID      string `json:"id"`
	UUID    string `json:"uuid"`
	Variant string `json:"variant"`
}

func (DeriveResponse) Message() string {
	return "uuid derived"
}

type DeriveBatchRequest struct {
	IDs []string `json:"ids"`
}

type DeriveBatchResponse struct {
	Results []DeriveResponse `json:"results"`
}

func (r DeriveBatchResponse) Meta() map[string]any {
	return map[string]any{"count": len(r.Results)}
}

type IdentifierResponse struct {
	UUID      string   `json:"uuid"`
	Variant   string   `json:"variant"`
	Sources   []string `json:"sources"`
	FirstSeen int64    `json:"first_seen"`
	LastSeen  int64    `json:"last_seen"`
	Count     int64    `json:"count"`
}

type ListResponse struct {
	Identifiers []IdentifierResponse `json:"identifiers"`
	page        int
	pageSize    int
	total       int
}

func (r ListResponse) Meta() map[string]any {
	return map[string]any{
		"page":      r.page,
		"page_size": r.pageSize,
		"total":     r.total,
	}
}

type ClassifyResponse struct {
	Input         string `json:"input"`
	IsUUID        bool   `json:"is_uuid"`
	HasUUIDPrefix bool   `json:"has_uuid_prefix"`
	IsInstanceURI bool   `json:"is_instance_uri"`
	IsURL         bool   `json:"is_url"`
	IDType        string `json:"id_type"`
}

type NormaliseResponse struct {
	ID         string `json:"id"`
	URI        string `json:"uri"`
	Normalised string `json:"normalised"`
	IDType     string `json:"id_type"`
}

type ConvertResponse struct {
	Platform string   `json:"platform"`
	Paths    string   `json:"paths"`
	Entries  []string `json:"entries"`
}

type JoinRequest struct {
	Parts []string `json:"parts"`
	Sep   string   `json:"sep"`
}

type JoinResponse struct {
	Path       string `json:"path"`
	Normalized string `json:"normalized"`
}

type SplitResponse struct {
	Entries []string `json:"entries"`
}

type PathInfoResponse struct {
	Path           string `json:"path"`
	IsAbs          bool   `json:"is_abs"`
	IsWindowsStyle bool   `json:"is_windows_style"`
	Dir            string `json:"dir"`
	Base           string `json:"base"`
	Stem           string `json:"stem"`
	Ext            string `json:"ext"`
	Normalized     string `json:"normalized"`
	Unix           string `json:"unix"`
	Windows        string `json:"windows"`
}

type GlobResponse struct {
	Pattern string `json:"pattern"`
	Name    string `json:"name"`
	Matched bool   `json:"matched"`
}

type SearchResponse struct {
	Pattern string   `json:"pattern"`
	Paths   []string `json:"paths"`
	Files   []string `json:"files"`
}

func (r SearchResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Files)}
}
