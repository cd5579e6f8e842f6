package models

// Archive is the exported-data shape: the user's auth parameters plus a
// vector of fresh envelopes built by re-encrypting every item currently in
// the store's memory (spec §4.3.5 export(), §6 "Exported archive").
type Archive struct {
	AuthParams AuthParams `json:"auth_params"`
	Items      []Envelope `json:"items"`
}
