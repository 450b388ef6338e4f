package badge

// MintReceipt records where a minted badge's artifacts live on IPFS.
type MintReceipt struct {
	ImageCID    string `json:"image_ipfs_hash"`
	MetadataCID string `json:"metadata_ipfs_hash"`
	TokenURI    string `json:"token_uri"`
}

// TokenURI returns the canonical token URI for a metadata CID.
func TokenURI(metadataCID string) string {
	return "ipfs://" + metadataCID
}
