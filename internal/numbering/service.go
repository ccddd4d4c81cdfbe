package numbering

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"ecsbilling/internal/common"
	"ecsbilling/internal/gst"
	"ecsbilling/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	// "/YY-YY/NNNNN" follows the prefix on every invoice number.
	fixedInvoiceSuffixLength = 12

	// MaxSequence is the largest sequence that renders in five digits.
	MaxSequence = 99999

	previewTimeout = 5 * time.Second
)

var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Service renders and allocates document numbers for the firm prefix.
type Service struct {
	allocator          Allocator
	prefix             string
	previewPlaceholder bool
	now                func() time.Time
	previews           singleflight.Group
	log                *logrus.Entry
}

type Option func(*Service)

// WithPreviewPlaceholder lets PreviewNext return a timestamp-derived,
// non-committing number when the allocator is unreachable.
func WithPreviewPlaceholder(enabled bool) Option {
	return func(s *Service) { s.previewPlaceholder = enabled }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(allocator Allocator, prefix string, log *logrus.Entry, opts ...Option) (*Service, error) {
	if !prefixPattern.MatchString(prefix) {
		return nil, fmt.Errorf("document prefix %q may only contain letters, digits and '-'", prefix)
	}
	if limit := models.KindInvoice.MaxNumberLength() - fixedInvoiceSuffixLength; len(prefix) > limit {
		return nil, fmt.Errorf("document prefix %q is longer than %d characters", prefix, limit)
	}
	s := &Service{
		allocator: allocator,
		prefix:    prefix,
		now:       time.Now,
		log:       log.WithField("component", "numbering"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ScopeFor returns the sequence scope of a document of kind dated on date.
func (s *Service) ScopeFor(kind models.DocumentKind, date time.Time) Scope {
	return Scope{
		FinancialYear: gst.FinancialYear(date),
		Prefix:        s.prefix,
		Marker:        kind.Marker(),
	}
}

// PreviewNext returns the number the next commit would allocate. It has no
// side effects; identical concurrent previews share one allocator read.
func (s *Service) PreviewNext(ctx context.Context, kind models.DocumentKind, date time.Time) (Allocation, error) {
	scope := s.ScopeFor(kind, date)

	// The shared read must outlive any one caller, so it runs on a detached
	// context and each caller waits on its own.
	ch := s.previews.DoChan(scope.Key(), func() (interface{}, error) {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), previewTimeout)
		defer cancel()
		return s.allocator.Preview(pctx, scope)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return Allocation{}, &common.AllocationError{Scope: scope.String(), Err: ctx.Err()}
	}

	v, err := res.Val, res.Err
	if err != nil {
		if s.previewPlaceholder {
			s.log.WithError(err).WithField("scope", scope.String()).Warn("sequence preview unavailable, returning placeholder")
			return s.placeholder(scope), nil
		}
		return Allocation{}, &common.AllocationError{Scope: scope.String(), Err: err}
	}

	a := v.(Allocation)
	if err := checkAllocation(a, kind); err != nil {
		return Allocation{}, &common.AllocationError{Scope: scope.String(), Err: err}
	}
	return a, nil
}

// CommitNext allocates the next number for kind. The number is consumed even
// if the caller later fails to save the document. It never falls back to a
// placeholder.
func (s *Service) CommitNext(ctx context.Context, kind models.DocumentKind, date time.Time) (Allocation, error) {
	scope := s.ScopeFor(kind, date)

	a, err := s.allocator.Commit(ctx, scope)
	if err != nil {
		s.log.WithError(err).WithField("scope", scope.String()).Error("sequence commit failed")
		return Allocation{}, &common.AllocationError{Scope: scope.String(), Err: err}
	}
	if err := checkAllocation(a, kind); err != nil {
		s.log.WithField("number", a.Number).Error("allocated number exceeds the permitted format")
		return Allocation{}, &common.AllocationError{Scope: scope.String(), Err: err}
	}

	s.log.WithFields(logrus.Fields{"number": a.Number, "sequence": a.Sequence}).Info("document number committed")
	return a, nil
}

func checkAllocation(a Allocation, kind models.DocumentKind) error {
	if a.Sequence < 1 || a.Sequence > MaxSequence {
		return fmt.Errorf("sequence %d outside 1..%d", a.Sequence, MaxSequence)
	}
	return common.ValidateDocumentNumber(a.Number, kind.MaxNumberLength(), "number")
}

func (s *Service) placeholder(scope Scope) Allocation {
	seq := s.now().UnixMilli() % (MaxSequence + 1)
	if seq == 0 {
		seq = 1
	}
	a := newAllocation(scope, seq)
	a.Placeholder = true
	return a
}
