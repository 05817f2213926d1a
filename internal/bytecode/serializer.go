package bytecode

import "encoding/json"

// Serialize renders an artifact as indented, human-inspectable JSON. This
// is the artifact's canonical wire and on-disk form.
func Serialize(artifact *Artifact) ([]byte, error) {
	return json.MarshalIndent(artifact, "", "  ")
}

// Deserialize parses an artifact previously produced by Serialize.
func Deserialize(data []byte) (*Artifact, error) {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}
