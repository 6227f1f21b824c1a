package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates numeric IDs using the Snowflake algorithm.
type Snowflake struct {
	node *snowflake.Node
}

// snowflakeEpoch is Mon Dec 01 2025 00:00:00.000 WIB.
const snowflakeEpoch = 1764522000000

const maxNodeID = 1<<10 - 1

func randomNodeID() (int64, error) {
	var nodeID int64
	if err := binary.Read(rand.Reader, binary.BigEndian, &nodeID); err != nil {
		return 0, fmt.Errorf("read node id: %w", err)
	}
	return nodeID & maxNodeID, nil
}

// NewSnowflake returns a generator for node nodeID (0 to 1023). A negative
// nodeID picks a random node, which is enough to keep replicas apart in
// practice.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 {
		var err error
		if nodeID, err = randomNodeID(); err != nil {
			return nil, err
		}
	}

	snowflake.Epoch = snowflakeEpoch

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

// Base36 adapts s to StringID. Short, time-ordered ids suit request
// correlation.
func (s *Snowflake) Base36() StringID {
	return snowflakeString{node: s.node}
}

type snowflakeString struct {
	node *snowflake.Node
}

func (g snowflakeString) Generate() string {
	return g.node.Generate().Base36()
}
