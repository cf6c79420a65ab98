package ledger

// Sentinel values recorded in the genesis block. The genesis previous hash is
// not a digest of anything; validators must never check the genesis block
// against a predecessor.
const (
	GenesisPreviousHash = "1"
	GenesisProof        = 100
)

// Transaction records a transfer of value between two addresses. Amounts are
// recorded as given; zero and negative values are not rejected.
//
// Fields are declared in lexicographic tag order so that the JSON encoding is
// canonical. Reordering them changes every block hash.
type Transaction struct {
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
}

// Block is one sealed entry of the chain. Blocks are immutable once appended;
// the Transactions slice is owned by the block and never mutated afterwards.
//
// Fields are declared in lexicographic tag order, same as Transaction.
type Block struct {
	Index        int64         `json:"index"`
	PreviousHash string        `json:"previous_hash"`
	Proof        int64         `json:"proof"`
	Timestamp    float64       `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
}
