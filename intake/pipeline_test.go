package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/fingerprint"
	"github.com/danielhkuo/meai-survey/models"
	"github.com/danielhkuo/meai-survey/store"
)

// countingStore records writes and can fail either step.
type countingStore struct {
	*store.Memory
	indexWrites atomic.Int32
	appends     atomic.Int32
	failIndex   error
	failAppend  error
}

func newCountingStore() *countingStore {
	return &countingStore{Memory: store.NewMemory()}
}

func (s *countingStore) SetIfAbsent(ctx context.Context, fp string, sub models.Submission) (bool, error) {
	if s.failIndex != nil {
		return false, s.failIndex
	}
	ok, err := s.Memory.SetIfAbsent(ctx, fp, sub)
	if ok {
		s.indexWrites.Add(1)
	}
	return ok, err
}

func (s *countingStore) Append(ctx context.Context, sub models.Submission) error {
	if s.failAppend != nil {
		return s.failAppend
	}
	s.appends.Add(1)
	return s.Memory.Append(ctx, sub)
}

// recordingStore claims and appends in one call, like the SQL backend.
type recordingStore struct {
	*countingStore
	mu         sync.Mutex
	records    atomic.Int32
	failRecord error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{countingStore: newCountingStore()}
}

func (s *recordingStore) Record(ctx context.Context, fp string, sub models.Submission) (bool, error) {
	if s.failRecord != nil {
		return false, s.failRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.Memory.SetIfAbsent(ctx, fp, sub)
	if err != nil || !ok {
		return false, err
	}
	s.records.Add(1)
	return true, s.Memory.Append(ctx, sub)
}

var fixedNow = time.Date(2025, 6, 1, 10, 30, 0, 123_456_789, time.UTC)

func newTestPipeline(st store.Store, opts ...Option) *Pipeline {
	n := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() (string, error) {
			n++
			return fmt.Sprintf("sub-%d", n), nil
		}),
		WithFingerprintSalt("test-salt"),
	}
	return NewPipeline(st, catalog.Default(), append(base, opts...)...)
}

func scenarioAnswers() models.Answers {
	return models.Answers{
		models.QuestionAgeGroup:      models.TextAnswer("18-24"),
		models.QuestionPlaceOfLiving: models.TextAnswer("Urban"),
		"happiness_level":            models.TextAnswer("7"),
	}
}

func TestSubmit_Accepted(t *testing.T) {
	st := newCountingStore()
	p := newTestPipeline(st)

	res, err := p.Submit(context.Background(), Request{
		Answers:        scenarioAnswers(),
		CompletionTime: 60,
		Fingerprint:    "  A  ",
		ClientIP:       "203.0.113.9",
	})
	require.NoError(t, err)

	sub := res.Submission
	assert.Equal(t, "sub-1", res.SubmissionID())
	assert.Equal(t, "A", sub.Fingerprint)
	assert.Equal(t, 60, sub.CompletionTime)
	assert.Equal(t, "203.0.113.9", sub.IPAddress)
	assert.Equal(t, fixedNow.Truncate(time.Millisecond), sub.Timestamp)
	assert.Equal(t, "7", sub.Answers["happiness_level"].Text())

	assert.Equal(t, int32(1), st.indexWrites.Load())
	assert.Equal(t, int32(1), st.appends.Load())

	id, err := p.Status(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", id)
}

func TestSubmit_EmptyAnswers(t *testing.T) {
	st := newCountingStore()
	p := newTestPipeline(st)

	for _, answers := range []models.Answers{nil, {}} {
		_, err := p.Submit(context.Background(), Request{Answers: answers, Fingerprint: "A"})
		assert.ErrorIs(t, err, ErrEmptyAnswers)
		assert.Equal(t, ReasonEmptyAnswers, Reason(err))
	}

	assert.Equal(t, int32(0), st.indexWrites.Load())
	assert.Equal(t, int32(0), st.appends.Load())
}

func TestSubmit_NegativeCompletionTime(t *testing.T) {
	st := newCountingStore()
	p := newTestPipeline(st)

	_, err := p.Submit(context.Background(), Request{Answers: scenarioAnswers(), CompletionTime: -1, Fingerprint: "A"})
	assert.ErrorIs(t, err, ErrInvalidAnswers)
	assert.Equal(t, 0, st.Len())
}

func TestSubmit_Duplicate(t *testing.T) {
	st := newCountingStore()
	p := newTestPipeline(st)
	ctx := context.Background()

	_, err := p.Submit(ctx, Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	require.NoError(t, err)

	_, err = p.Submit(ctx, Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
	assert.Equal(t, ReasonDuplicateSubmission, Reason(err))
	assert.Contains(t, Message(err), "already submitted")

	assert.Equal(t, 1, st.Len())
	assert.Equal(t, int32(1), st.indexWrites.Load())
	assert.Equal(t, int32(1), st.appends.Load())
}

func TestSubmit_ConcurrentSameFingerprint(t *testing.T) {
	st := newCountingStore()
	p := NewPipeline(st, catalog.Default(), WithFingerprintSalt("s"))

	var accepted, duplicates atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Submit(context.Background(), Request{Answers: scenarioAnswers(), Fingerprint: "same"})
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, ErrDuplicateSubmission):
				duplicates.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, int32(24), duplicates.Load())
	assert.Equal(t, 1, st.Len())
}

func TestSubmit_StoreUnavailable(t *testing.T) {
	p := newTestPipeline(store.Unavailable{})

	res, err := p.Submit(context.Background(), Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, ReasonStoreUnavailable, Reason(err))

	_, err = p.Status(context.Background(), "A")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestSubmit_IndexFault(t *testing.T) {
	st := newCountingStore()
	st.failIndex = errors.New("disk full")
	p := newTestPipeline(st)

	_, err := p.Submit(context.Background(), Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	assert.ErrorIs(t, err, ErrStoreFault)
	assert.Equal(t, 0, st.Len())
}

func TestSubmit_PartialWriteIsFault(t *testing.T) {
	st := newCountingStore()
	st.failAppend = errors.New("connection reset")
	p := newTestPipeline(st)

	res, err := p.Submit(context.Background(), Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrStoreFault)
	assert.Equal(t, ReasonStoreFault, Reason(err))
	assert.Equal(t, "Failed to submit response", Message(err))

	// Index was written, list was not
	assert.Equal(t, int32(1), st.indexWrites.Load())
	assert.Equal(t, 0, st.Len())
}

func TestSubmit_DerivedFingerprint(t *testing.T) {
	st := newCountingStore()
	p := newTestPipeline(st)
	ctx := context.Background()

	res, err := p.Submit(ctx, Request{Answers: scenarioAnswers(), ClientIP: "10.0.0.1", UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)
	assert.True(t, fingerprint.IsDerived(res.Submission.Fingerprint))

	// Same browser and address again is a duplicate
	_, err = p.Submit(ctx, Request{Answers: scenarioAnswers(), ClientIP: "10.0.0.1", UserAgent: "Mozilla/5.0"})
	assert.ErrorIs(t, err, ErrDuplicateSubmission)

	// A different client without a fingerprint is not
	_, err = p.Submit(ctx, Request{Answers: scenarioAnswers(), ClientIP: "10.0.0.2", UserAgent: "Mozilla/5.0"})
	assert.NoError(t, err)
	assert.Equal(t, 2, st.Len())
}

func TestSubmit_IPHashing(t *testing.T) {
	p := newTestPipeline(store.NewMemory(), WithIPHashing(true))

	res, err := p.Submit(context.Background(), Request{Answers: scenarioAnswers(), Fingerprint: "A", ClientIP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, fingerprint.HashIP("10.0.0.1", "test-salt"), res.Submission.IPAddress)
}

func TestSubmit_StrictValidation(t *testing.T) {
	st := newCountingStore()
	p := newTestPipeline(st, WithStrictValidation(true))

	_, err := p.Submit(context.Background(), Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAnswers)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Problems)
	assert.Equal(t, verr.Problems[0].Message, Message(err))
	assert.Equal(t, int32(0), st.indexWrites.Load())
}

func TestSubmit_LenientByDefault(t *testing.T) {
	p := newTestPipeline(store.NewMemory())

	// Unknown question ids and out-of-range values are recorded untouched
	_, err := p.Submit(context.Background(), Request{
		Answers:     models.Answers{"not_in_catalog": models.NumberAnswer(99)},
		Fingerprint: "A",
	})
	assert.NoError(t, err)
}

func TestSubmit_IDGeneratorFailure(t *testing.T) {
	st := newCountingStore()
	p := newTestPipeline(st, WithIDGenerator(func() (string, error) { return "", errors.New("entropy") }))

	_, err := p.Submit(context.Background(), Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	assert.ErrorIs(t, err, ErrStoreFault)
	assert.Equal(t, int32(0), st.indexWrites.Load())
}

func TestSubmit_DefaultIDsAreUnique(t *testing.T) {
	p := NewPipeline(store.NewMemory(), catalog.Default())
	ctx := context.Background()

	a, err := p.Submit(ctx, Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	require.NoError(t, err)
	b, err := p.Submit(ctx, Request{Answers: scenarioAnswers(), Fingerprint: "B"})
	require.NoError(t, err)

	assert.NotEqual(t, a.SubmissionID(), b.SubmissionID())
	assert.Less(t, a.SubmissionID(), b.SubmissionID())
}

func TestStatus_Unknown(t *testing.T) {
	p := newTestPipeline(store.NewMemory())

	id, err := p.Status(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, id)

	id, err = p.Status(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestReasonAndMessage(t *testing.T) {
	assert.Equal(t, "", Reason(nil))
	assert.Equal(t, "", Reason(errors.New("other")))
	assert.Equal(t, ReasonStoreFault, Reason(fmt.Errorf("wrapped: %w", ErrStoreFault)))
	assert.Equal(t, "No answers provided", Message(ErrEmptyAnswers))
	assert.Equal(t, "Some answers are invalid", Message(ErrInvalidAnswers))
}

func TestSubmit_UsesRecorder(t *testing.T) {
	st := newRecordingStore()
	p := newTestPipeline(st)
	ctx := context.Background()

	res, err := p.Submit(ctx, Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", res.SubmissionID())

	_, err = p.Submit(ctx, Request{Answers: scenarioAnswers(), Fingerprint: "A"})
	assert.ErrorIs(t, err, ErrDuplicateSubmission)

	assert.Equal(t, int32(1), st.records.Load())
	assert.Equal(t, 1, st.Len())
	// The two-step path is never taken
	assert.Equal(t, int32(0), st.indexWrites.Load())
	assert.Equal(t, int32(0), st.appends.Load())
}

func TestSubmit_RecorderFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{"unavailable", fmt.Errorf("dial: %w", store.ErrUnavailable), ReasonStoreUnavailable},
		{"fault", errors.New("constraint failed"), ReasonStoreFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newRecordingStore()
			st.failRecord = tt.err
			p := newTestPipeline(st)

			res, err := p.Submit(context.Background(), Request{Answers: scenarioAnswers(), Fingerprint: "A"})
			assert.Nil(t, res)
			assert.Equal(t, tt.reason, Reason(err))
			assert.Equal(t, 0, st.Len())
		})
	}
}

func TestSubmit_LogsDerivedFingerprint(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	p := newTestPipeline(store.NewMemory())
	ctx := context.Background()

	_, err := p.Submit(ctx, Request{Answers: scenarioAnswers(), Fingerprint: "client-fp"})
	require.NoError(t, err)
	_, err = p.Submit(ctx, Request{Answers: scenarioAnswers(), ClientIP: "10.0.0.1", UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)

	var derived []bool
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		if entry["msg"] == "submission recorded" {
			derived = append(derived, entry["derived"].(bool))
		}
	}
	assert.Equal(t, []bool{false, true}, derived)
}
