package rct

// EcdhTuple carries the per-output encrypted amount data: the commitment
// mask and the 8-byte masked amount. Order matches output order. In the
// compact encoding only the masked amount travels on the wire; the mask is
// recomputed by the receiver and is left zero on reconstruction.
type EcdhTuple struct {
	Mask   Hash
	Amount EncryptedAmount
}
