package core

import (
	"github.com/ygrebnov/checktype/constants"
	"github.com/ygrebnov/checktype/signature"
)

// Stage is a step of one invocation: Binding → ArgChecking → Executing →
// ReturnChecking → Done. A failed call stops at the stage that failed.
type Stage string

const (
	StageBinding        Stage = constants.StageBinding
	StageArgChecking    Stage = constants.StageArgChecking
	StageExecuting      Stage = constants.StageExecuting
	StageReturnChecking Stage = constants.StageReturnChecking
	StageDone           Stage = constants.StageDone
)

func (s Stage) String() string { return string(s) }

// Service enforces one Signature. It holds no per-call state.
type Service struct {
	sig *signature.Signature
}

// NewService creates a Service for the given Signature.
func NewService(sig *signature.Signature) *Service {
	return &Service{sig: sig}
}

// Signature returns the enforced Signature.
func (s *Service) Signature() *signature.Signature { return s.sig }
