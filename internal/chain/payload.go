package chain

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"
)

type CommandKind string

const (
	CmdSplitCoins      CommandKind = "SplitCoins"
	CmdMoveCall        CommandKind = "MoveCall"
	CmdTransferObjects CommandKind = "TransferObjects"
)

type ArgKind string

const (
	ArgGas    ArgKind = "gas"
	ArgPure   ArgKind = "pure"
	ArgObject ArgKind = "object"
	ArgResult ArgKind = "result"
)

// Argument is one input of a programmable transaction command. Value holds the
// pure value or object ID; Index points at the result of an earlier command.
type Argument struct {
	Kind  ArgKind `json:"kind"`
	Value string  `json:"value,omitempty"`
	Index *int    `json:"index,omitempty"`
}

func Gas() Argument { return Argument{Kind: ArgGas} }
func Pure(v string) Argument { return Argument{Kind: ArgPure, Value: v} }
func ObjectRef(id string) Argument { return Argument{Kind: ArgObject, Value: id} }
func Result(index int) Argument { return Argument{Kind: ArgResult, Index: &index} }

type Command struct {
	Kind      CommandKind `json:"kind"`
	Target    string      `json:"target,omitempty"`
	Arguments []Argument  `json:"arguments"`
}

// Payload is an unsigned transaction for the wallet to sign and submit.
// A payload with no commands is the demo-mode no-op.
type Payload struct {
	Function    string    `json:"function"`
	Network     string    `json:"network"`
	Package     string    `json:"package,omitempty"`
	Commands    []Command `json:"commands"`
	Fingerprint string    `json:"fingerprint,omitempty"`
}

func (p Payload) Empty() bool { return len(p.Commands) == 0 }

// fingerprint is the hex BLAKE2b-256 digest of the JSON-encoded commands.
func fingerprint(cmds []Command) string {
	raw, err := json.Marshal(cmds)
	if err != nil {
		return ""
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
