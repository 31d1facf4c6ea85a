package dto

import (
	"errors"
	"strings"
)

// ConnectRequest asks for the ranked paths between two aspects.
type ConnectRequest struct {
	Begin string `json:"begin" binding:"required"`
	End   string `json:"end" binding:"required"`

	// MaxPaths caps the number of returned paths. 0 means no cap.
	MaxPaths int `json:"max_paths,omitempty"`
	// MaxPathLength caps the number of aspects per path. 0 means no cap.
	MaxPathLength int `json:"max_path_length,omitempty"`
}

// Validate performs validation on ConnectRequest
func (r *ConnectRequest) Validate() error {
	if strings.TrimSpace(r.Begin) == "" {
		return errors.New("begin cannot be empty")
	}
	if strings.TrimSpace(r.End) == "" {
		return errors.New("end cannot be empty")
	}
	if r.MaxPaths < 0 || r.MaxPathLength < 0 {
		return errors.New("limits cannot be negative")
	}
	return nil
}

// PathResult is one ranked path in a connect response.
type PathResult struct {
	Aspects     []string  `json:"aspects"`
	Key         string    `json:"key"`
	Weights     []float64 `json:"weights"`
	FinalWeight float64   `json:"final_weight"`
	Length      int       `json:"length"`
}

// ConnectResponse is the body of a successful connect call.
type ConnectResponse struct {
	Begin string       `json:"begin"`
	End   string       `json:"end"`
	Paths []PathResult `json:"paths"`
}

// CrackRequest asks for the primary decomposition of aspect quantities.
type CrackRequest struct {
	Quantities map[string]float64 `json:"quantities" binding:"required"`
}

// Validate performs validation on CrackRequest
func (r *CrackRequest) Validate() error {
	if len(r.Quantities) == 0 {
		return errors.New("quantities cannot be empty")
	}
	for name, qty := range r.Quantities {
		if strings.TrimSpace(name) == "" {
			return errors.New("aspect name cannot be empty")
		}
		if qty <= 0 {
			return errors.New("quantities must be positive")
		}
	}
	return nil
}

// HoldingRequest sets the held quantity for an aspect.
type HoldingRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

// Validate performs validation on HoldingRequest
func (r *HoldingRequest) Validate() error {
	if r.Quantity == nil {
		return errors.New("quantity is required")
	}
	if *r.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}
