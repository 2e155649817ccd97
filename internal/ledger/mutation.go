package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gowebpki/jcs"
	"github.com/oklog/ulid/v2"

	"github.com/objectledger/custodian/internal/adapter"
	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/journal"
	"github.com/objectledger/custodian/internal/logger"

	"go.uber.org/zap"
)

//go:generate mockgen -source=mutation.go -destination=../mocks/ledger_mutation.go -package=mocks -mock_names=MutationClient=MockMutationClient

// StepKind identifies one primitive operation inside a mutation
type StepKind string

const (
	StepSplitFunds      StepKind = "split_funds"
	StepSplitGas        StepKind = "split_gas"
	StepMergeFunds      StepKind = "merge_funds"
	StepTransferObjects StepKind = "transfer_objects"
	StepInvoke          StepKind = "invoke"
)

// Arg is one argument to a mutation step. Exactly one field is set: an
// owned object reference, an inline pure value, or the output of an
// earlier step in the same mutation.
type Arg struct {
	Object string `json:"object,omitempty"`
	Pure   any    `json:"pure,omitempty"`
	Result *int   `json:"result,omitempty"`
}

// ObjectArg references an owned object by id
func ObjectArg(id domain.ObjectID) Arg {
	return Arg{Object: string(id)}
}

// PureArg passes an inline value
func PureArg(v any) Arg {
	return Arg{Pure: v}
}

// ResultArg references the output of the step at the given index
func ResultArg(step int) Arg {
	return Arg{Result: &step}
}

// Step is one primitive operation inside a mutation
type Step struct {
	Kind      StepKind       `json:"kind"`
	Source    *Arg           `json:"source,omitempty"`
	Sources   []Arg          `json:"sources,omitempty"`
	Amount    uint64         `json:"amount,omitempty"`
	Objects   []Arg          `json:"objects,omitempty"`
	Recipient domain.Address `json:"recipient,omitempty"`
	Target    string         `json:"target,omitempty"`
	TypeArgs  []string       `json:"type_args,omitempty"`
	Args      []Arg          `json:"args,omitempty"`
}

// Mutation is an ordered batch of steps signed and committed atomically
// on behalf of a sender. Kind is caller-side metadata for the submission
// journal and never reaches the wire.
type Mutation struct {
	Sender domain.Address `json:"sender"`
	Steps  []Step         `json:"steps"`

	Kind string `json:"-"`
}

// NewMutation starts an empty mutation for the given sender
func NewMutation(sender domain.Address) *Mutation {
	return &Mutation{Sender: sender}
}

func (m *Mutation) add(step Step) int {
	m.Steps = append(m.Steps, step)
	return len(m.Steps) - 1
}

// SplitFunds carves an exact amount off an owned fund object and returns
// the index of the step producing the new fund object
func (m *Mutation) SplitFunds(source domain.ObjectID, amount uint64) int {
	arg := ObjectArg(source)
	return m.add(Step{Kind: StepSplitFunds, Source: &arg, Amount: amount})
}

// SplitGas carves an exact amount of the native token off the sender's
// gas object
func (m *Mutation) SplitGas(amount uint64) int {
	return m.add(Step{Kind: StepSplitGas, Amount: amount})
}

// MergeFunds folds the source fund objects into the target
func (m *Mutation) MergeFunds(target domain.ObjectID, sources []domain.ObjectID) int {
	args := make([]Arg, 0, len(sources))
	for _, id := range sources {
		args = append(args, ObjectArg(id))
	}
	targetArg := ObjectArg(target)
	return m.add(Step{Kind: StepMergeFunds, Source: &targetArg, Sources: args})
}

// TransferObjects sends the given objects to a recipient address
func (m *Mutation) TransferObjects(objects []Arg, recipient domain.Address) int {
	return m.add(Step{Kind: StepTransferObjects, Objects: objects, Recipient: recipient})
}

// Invoke calls an on-ledger function identified by package::module::name
func (m *Mutation) Invoke(target string, typeArgs []string, args ...Arg) int {
	return m.add(Step{Kind: StepInvoke, Target: target, TypeArgs: typeArgs, Args: args})
}

// Digest computes the canonical content digest of the mutation. The same
// sender and step sequence always digests to the same value regardless of
// map ordering or whitespace.
func (m *Mutation) Digest() (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Submission tracks one broadcast mutation through to its single terminal
// resolution. Wait blocks until the node reports commit or abort, or the
// caller's context expires. A submission resolves exactly once.
type Submission struct {
	ID     string
	Digest string

	once   sync.Once
	done   chan struct{}
	result *Result
	err    error
}

func newSubmission(id string, digest string) *Submission {
	return &Submission{
		ID:     id,
		Digest: digest,
		done:   make(chan struct{}),
	}
}

func (s *Submission) resolve(result *Result, err error) {
	s.once.Do(func() {
		s.result = result
		s.err = err
		close(s.done)
	})
}

// Wait blocks until the submission resolves or ctx expires. Expiry does
// not retract the broadcast; the mutation may still commit on the ledger.
func (s *Submission) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return s.result, s.err
	}
}

// ResolvedSubmission returns an already-committed submission
func ResolvedSubmission(result *Result) *Submission {
	s := newSubmission(ulid.Make().String(), result.Digest)
	s.resolve(result, nil)
	return s
}

// FailedSubmission returns an already-aborted submission
func FailedSubmission(err error) *Submission {
	s := newSubmission(ulid.Make().String(), "")
	s.resolve(nil, err)
	return s
}

// MutationClient broadcasts mutations to a ledger node
type MutationClient interface {
	Submit(ctx context.Context, m *Mutation) (*Submission, error)
}

type mutationClient struct {
	rpc     *rpcCaller
	journal journal.Recorder
}

// NewMutationClient builds a MutationClient against the given node endpoint.
// recorder may be nil to disable submission journaling.
func NewMutationClient(endpoint string, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, recorder journal.Recorder) MutationClient {
	return &mutationClient{
		rpc:     newRPCCaller(endpoint, httpClient, jsonAdapter),
		journal: recorder,
	}
}

// submitResult is the node's response to a mutation broadcast
type submitResult struct {
	Digest        string         `json:"digest"`
	Status        string         `json:"status"`
	Error         string         `json:"error"`
	Events        []Event        `json:"events"`
	ObjectChanges []ObjectChange `json:"object_changes"`
}

// Submit broadcasts the mutation and returns a submission that resolves
// once the node reports the outcome. The returned error covers only
// pre-broadcast failures; post-broadcast failures surface through Wait.
func (c *mutationClient) Submit(ctx context.Context, m *Mutation) (*Submission, error) {
	digest, err := m.Digest()
	if err != nil {
		return nil, fmt.Errorf("digest mutation: %w", err)
	}

	sub := newSubmission(ulid.Make().String(), digest)

	if c.journal != nil {
		record := &journal.SubmissionRecord{
			ID:     sub.ID,
			Digest: digest,
			Kind:   m.Kind,
			Sender: string(m.Sender),
			Status: journal.StatusSubmitted,
		}
		if err := c.journal.RecordSubmitted(ctx, record); err != nil {
			logger.WarnCtx(ctx, "failed to journal submission",
				zap.String("submission_id", sub.ID), zap.Error(err))
		}
	}

	go c.broadcast(ctx, m, sub)

	return sub, nil
}

func (c *mutationClient) broadcast(ctx context.Context, m *Mutation, sub *Submission) {
	var res submitResult
	if err := c.rpc.call(ctx, "ledger_submitMutation", []any{m}, &res); err != nil {
		c.markAborted(ctx, sub.ID, err.Error())
		sub.resolve(nil, err)
		return
	}

	if res.Status != "success" {
		err := MapAbort(res.Error, res.Digest)
		c.markAborted(ctx, sub.ID, res.Error)
		sub.resolve(nil, err)
		return
	}

	if c.journal != nil {
		if err := c.journal.MarkCommitted(ctx, sub.ID, res.Digest); err != nil {
			logger.WarnCtx(ctx, "failed to mark submission committed",
				zap.String("submission_id", sub.ID), zap.Error(err))
		}
	}

	sub.resolve(&Result{
		Digest:        res.Digest,
		Events:        res.Events,
		ObjectChanges: res.ObjectChanges,
	}, nil)
}

func (c *mutationClient) markAborted(ctx context.Context, id string, reason string) {
	if c.journal == nil {
		return
	}
	if err := c.journal.MarkAborted(ctx, id, reason); err != nil {
		logger.WarnCtx(ctx, "failed to mark submission aborted",
			zap.String("submission_id", id), zap.Error(err))
	}
}
