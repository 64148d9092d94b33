package handler

import (
	"strings"

	"kyntel/internal/cluster"
	dErrors "kyntel/pkg/domain-errors"
)

// maxAddressPoints bounds a single analysis request.
const maxAddressPoints = 10000

// AnalyzeRequest is the HTTP request body for POST /v1/clusters/analyze.
type AnalyzeRequest struct {
	AddressPoints []cluster.AddressPoint  `json:"addressPoints"`
	Regions       []cluster.RegionSummary `json:"regions,omitempty"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *AnalyzeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.AddressPoints == nil {
		return dErrors.New(dErrors.CodeValidation, "addressPoints is required")
	}
	if len(r.AddressPoints) > maxAddressPoints {
		return dErrors.Newf(dErrors.CodeValidation, "addressPoints must contain at most %d entries", maxAddressPoints)
	}

	for i := range r.AddressPoints {
		p := &r.AddressPoints[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return dErrors.Newf(dErrors.CodeValidation, "addressPoints[%d].id is required", i)
		}
		// A half-geocoded point cannot be placed; treat it as not geocoded.
		if (p.Lat == nil) != (p.Lng == nil) {
			p.Lat = nil
			p.Lng = nil
		}
	}

	for i := range r.Regions {
		if strings.TrimSpace(r.Regions[i].Name) == "" {
			return dErrors.Newf(dErrors.CodeValidation, "regions[%d].name is required", i)
		}
	}

	return nil
}
