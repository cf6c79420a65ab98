package node

import (
	"encoding/hex"
	"fmt"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/suites"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// Identity is the keypair naming a node on the network. The identifier, the
// hex encoding of the public point, is the address mining rewards are paid
// to; the private scalar stays with the process and is never serialized.
type Identity struct {
	private kyber.Scalar
	public  kyber.Point
	id      string
}

// NewIdentity generates a fresh random identity.
func NewIdentity() (Identity, error) {
	private := suite.Scalar().Pick(suite.RandomStream())
	public := suite.Point().Mul(private, nil)
	buf, err := public.MarshalBinary()
	if err != nil {
		return Identity{}, fmt.Errorf("marshaling public key: %w", err)
	}
	return Identity{
		private: private,
		public:  public,
		id:      hex.EncodeToString(buf),
	}, nil
}

// String returns the node identifier derived from the public key.
func (id Identity) String() string {
	return id.id
}
