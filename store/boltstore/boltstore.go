// Package boltstore persists a ProposalStore's proposals and audit log to a
// BoltDB file, grounded on the teacher's services/identity-gateway/store.go
// bucket-per-record-family pattern: JSON-encoded values, buckets created up
// front so a misconfigured deployment fails at open time rather than on
// first write.
package boltstore

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"time"

	bolt "go.etcd.io/bbolt"

	"hcgov/crypto"
	"hcgov/store"
)

var (
	bucketProposals = []byte("proposals")
	bucketAudit     = []byte("audit")
)

// Store is a BoltDB-backed journal mirroring a store.ProposalStore's state
// to disk so a restarted engine can resume without replaying history.
type Store struct {
	db *bolt.DB
}

// Open creates (or reopens) the Bolt file at path, creating the proposals
// and audit buckets if absent.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketProposals, bucketAudit} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying Bolt file handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// voteRecordWire and proposalWire are JSON-safe mirrors of store.VoteRecord
// and store.Proposal: crypto.Address has no exported fields, so it must be
// rendered to and parsed from its bech32 string form, and the sub-ledger map
// keys (raw 20-byte address bytes held as a Go string) are hex-encoded so
// they round-trip through JSON object keys cleanly.
type voteRecordWire struct {
	Choice store.VoteChoice `json:"choice"`
	Weight string           `json:"weight"`
}

type proposalWire struct {
	ID             uint64                    `json:"id"`
	Metadata       string                    `json:"metadata"`
	CreatedBy      string                    `json:"createdBy"`
	State          store.ProposalState       `json:"state"`
	StartDate      time.Time                 `json:"startDate"`
	Lifetime       time.Duration             `json:"lifetime"`
	LastPendedDate time.Time                 `json:"lastPendedDate"`
	Yea            string                    `json:"yea"`
	Nay            string                    `json:"nay"`
	Upstake        string                    `json:"upstake"`
	Downstake      string                    `json:"downstake"`
	Votes          map[string]voteRecordWire `json:"votes"`
	Upstakes       map[string]string         `json:"upstakes"`
	Downstakes     map[string]string         `json:"downstakes"`
}

func toWire(p *store.Proposal) proposalWire {
	votes := make(map[string]voteRecordWire, len(p.Votes))
	for key, rec := range p.Votes {
		votes[hex.EncodeToString([]byte(key))] = voteRecordWire{Choice: rec.Choice, Weight: rec.Weight.String()}
	}
	return proposalWire{
		ID:             p.ID,
		Metadata:       p.Metadata,
		CreatedBy:      p.CreatedBy.String(),
		State:          p.State,
		StartDate:      p.StartDate,
		Lifetime:       p.Lifetime,
		LastPendedDate: p.LastPendedDate,
		Yea:            p.Yea.String(),
		Nay:            p.Nay.String(),
		Upstake:        p.Upstake.String(),
		Downstake:      p.Downstake.String(),
		Votes:          votes,
		Upstakes:       encodeSubledger(p.Upstakes),
		Downstakes:     encodeSubledger(p.Downstakes),
	}
}

func encodeSubledger(in map[string]*big.Int) map[string]string {
	out := make(map[string]string, len(in))
	for key, amount := range in {
		out[hex.EncodeToString([]byte(key))] = amount.String()
	}
	return out
}

func decodeSubledger(in map[string]string) (map[string]*big.Int, error) {
	out := make(map[string]*big.Int, len(in))
	for hexKey, amountStr := range in {
		key, err := hex.DecodeString(hexKey)
		if err != nil {
			return nil, err
		}
		amount, err := parseBig(amountStr)
		if err != nil {
			return nil, err
		}
		out[string(key)] = amount
	}
	return out, nil
}

func parseBig(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, store.ErrMalformedAmount
	}
	return amount, nil
}

func fromWire(w proposalWire) (*store.Proposal, error) {
	createdBy, err := crypto.DecodeAddress(w.CreatedBy)
	if err != nil {
		return nil, err
	}
	yea, err := parseBig(w.Yea)
	if err != nil {
		return nil, err
	}
	nay, err := parseBig(w.Nay)
	if err != nil {
		return nil, err
	}
	upstake, err := parseBig(w.Upstake)
	if err != nil {
		return nil, err
	}
	downstake, err := parseBig(w.Downstake)
	if err != nil {
		return nil, err
	}
	votes := make(map[string]store.VoteRecord, len(w.Votes))
	for hexKey, rec := range w.Votes {
		key, err := hex.DecodeString(hexKey)
		if err != nil {
			return nil, err
		}
		weight, err := parseBig(rec.Weight)
		if err != nil {
			return nil, err
		}
		votes[string(key)] = store.VoteRecord{Choice: rec.Choice, Weight: weight}
	}
	upstakes, err := decodeSubledger(w.Upstakes)
	if err != nil {
		return nil, err
	}
	downstakes, err := decodeSubledger(w.Downstakes)
	if err != nil {
		return nil, err
	}
	return &store.Proposal{
		ID:             w.ID,
		Metadata:       w.Metadata,
		CreatedBy:      createdBy,
		State:          w.State,
		StartDate:      w.StartDate,
		Lifetime:       w.Lifetime,
		LastPendedDate: w.LastPendedDate,
		Yea:            yea,
		Nay:            nay,
		Upstake:        upstake,
		Downstake:      downstake,
		Votes:          votes,
		Upstakes:       upstakes,
		Downstakes:     downstakes,
	}, nil
}

// SaveProposal upserts p's current snapshot into the proposals bucket,
// keyed by its big-endian-encoded id so iteration in Bolt's natural byte
// order yields ascending id order.
func (s *Store) SaveProposal(p *store.Proposal) error {
	payload, err := json.Marshal(toWire(p))
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProposals).Put(idKey(p.ID), payload)
	})
}

// LoadProposals returns every persisted proposal in ascending id order.
func (s *Store) LoadProposals() ([]*store.Proposal, error) {
	var out []*store.Proposal
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProposals).ForEach(func(_, value []byte) error {
			var wire proposalWire
			if err := json.Unmarshal(value, &wire); err != nil {
				return err
			}
			p, err := fromWire(wire)
			if err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendAudit persists a single audit record, keyed by its sequence number.
func (s *Store) AppendAudit(record store.AuditRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAudit).Put(seqKey(record.Sequence), payload)
	})
}

// LoadAudit returns every persisted audit record in ascending sequence order.
func (s *Store) LoadAudit() ([]store.AuditRecord, error) {
	var out []store.AuditRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAudit).ForEach(func(_, value []byte) error {
			var record store.AuditRecord
			if err := json.Unmarshal(value, &record); err != nil {
				return err
			}
			out = append(out, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Load reconstructs a fresh store.ProposalStore from every persisted
// proposal and audit record, used to resume an Engine across a restart.
func Load(path string) (*store.ProposalStore, *Store, error) {
	s, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	proposals, err := s.LoadProposals()
	if err != nil {
		return nil, nil, err
	}
	audit, err := s.LoadAudit()
	if err != nil {
		return nil, nil, err
	}
	return store.Restore(proposals, audit), s, nil
}
