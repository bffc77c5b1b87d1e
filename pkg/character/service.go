package character

import (
	"errors"

	"cameo/pkg/inference"
)

// MaxGeneratedTokens caps every completion issued by the service.
const MaxGeneratedTokens = 200

// Service fetches character profiles and runs role-play chat turns. It holds
// no per-request state and is safe for concurrent use.
type Service struct {
	inf        inference.Inferencer
	normalizer Normalizer
	tokens     func(string) (int, error)
}

type Option func(*Service)

// WithStrictArguments rejects tool calls whose arguments lack any profile field.
func WithStrictArguments(strict bool) Option {
	return func(s *Service) {
		s.normalizer.Strict = strict
	}
}

// WithTokenCounter enables prompt size logging.
func WithTokenCounter(count func(string) (int, error)) Option {
	return func(s *Service) {
		s.tokens = count
	}
}

func NewService(inf inference.Inferencer, opts ...Option) (*Service, error) {
	if inf == nil {
		return nil, errors.New("character: inferencer must not be nil")
	}
	s := &Service{inf: inf}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
