// Package cluster groups geocoded registry addresses into proximity clusters
// and flags suspicious concentration patterns.
package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"kyntel/internal/audit"
	"kyntel/internal/cluster/metrics"
	"kyntel/pkg/requestcontext"
)

// shellMarkers are name fragments that count toward the shell-company signal.
var shellMarkers = []string{"shell", "nominee"}

// AnalyzeInput carries the already-fetched address points and any
// caller-supplied regional aggregates.
type AnalyzeInput struct {
	AddressPoints []AddressPoint
	Regions       []RegionSummary
}

// Service runs the proximity clustering analysis. It holds no per-request
// state; every invocation works on its own locals.
type Service struct {
	thresholds Thresholds
	logger     *slog.Logger
	metrics    *metrics.Metrics
	audit      audit.Publisher
}

// New constructs the clustering service.
func New(thresholds Thresholds, logger *slog.Logger, m *metrics.Metrics, auditor audit.Publisher) *Service {
	return &Service{
		thresholds: thresholds,
		logger:     logger,
		metrics:    m,
		audit:      auditor,
	}
}

// Analyze groups geocoded addresses by single-pass greedy proximity grouping
// and derives the heatmap, bounding box, and aggregate stats.
//
// Grouping is anchor-based: an address joins a group only when it is within
// radius of the group's seed, not of other members. This is deliberately not
// connected-components clustering; it is order-sensitive at the boundary but
// cheap and reproducible for a fixed input order.
func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (*Analysis, error) {
	start := time.Now()

	points := make([]AddressPoint, len(input.AddressPoints))
	copy(points, input.AddressPoints)
	for i := range points {
		points[i].RiskScore = addressRisk(points[i])
	}

	geocoded := make([]int, 0, len(points))
	for i, p := range points {
		if p.Geocoded() {
			geocoded = append(geocoded, i)
		}
	}

	analysis := &Analysis{
		AddressPoints: points,
		Clusters:      []Cluster{},
		HeatmapData:   make([]HeatmapPoint, 0, len(geocoded)),
	}

	// Greedy single-pass grouping over geocoded points in input order.
	processed := make(map[int]bool, len(geocoded))
	clusterSeq := 0
	for gi, i := range geocoded {
		if processed[i] {
			continue
		}
		processed[i] = true
		seed := points[i]
		group := []int{i}

		for _, j := range geocoded[gi+1:] {
			if processed[j] {
				continue
			}
			d := HaversineKm(*seed.Lat, *seed.Lng, *points[j].Lat, *points[j].Lng)
			if d <= s.thresholds.RadiusKm {
				processed[j] = true
				group = append(group, j)
			}
		}

		// Singleton groups stay out of the proximity cluster list; the
		// address itself is still covered by AddressPoints.
		if len(group) < 2 {
			continue
		}

		clusterSeq++
		analysis.Clusters = append(analysis.Clusters, s.buildCluster(clusterSeq, seed, group, points))
	}

	// Caller-supplied regional aggregates always materialize, whatever their
	// size, so top-level region summaries stay complete.
	for _, region := range input.Regions {
		clusterSeq++
		analysis.Clusters = append(analysis.Clusters, s.buildRegionCluster(clusterSeq, region))
	}

	for _, i := range geocoded {
		analysis.HeatmapData = append(analysis.HeatmapData, HeatmapPoint{
			Lat:       *points[i].Lat,
			Lng:       *points[i].Lng,
			Intensity: points[i].RiskScore / 100,
		})
	}

	analysis.BoundingBox = s.boundingBox(points, geocoded)
	analysis.Stats = s.buildStats(points, len(analysis.Clusters))

	s.metrics.ObserveAnalyzeLatency(time.Since(start))
	s.metrics.AddClustersDiscovered(len(analysis.Clusters))

	if s.audit != nil {
		s.audit.Publish(ctx, audit.Event{
			Action:    audit.ActionClustersAnalyzed,
			RequestID: requestcontext.RequestID(ctx),
			Detail:    fmt.Sprintf("%d addresses, %d clusters", len(points), len(analysis.Clusters)),
		})
	}

	return analysis, nil
}

func (s *Service) buildCluster(seq int, seed AddressPoint, group []int, points []AddressPoint) Cluster {
	c := Cluster{
		ID:           fmt.Sprintf("cluster-%d", seq),
		SeedAddress:  seed.Address,
		Center:       Coordinates{Lat: *seed.Lat, Lng: *seed.Lng},
		AddressIDs:   make([]string, 0, len(group)),
		AddressCount: len(group),
		Flags:        []string{},
	}

	risks := make([]float64, 0, len(group))
	shellSignals := 0
	for _, i := range group {
		p := points[i]
		c.AddressIDs = append(c.AddressIDs, p.ID)
		c.EntityCount += len(p.Entities)
		risks = append(risks, p.RiskScore)
		for _, e := range p.Entities {
			if looksLikeShell(e, s.thresholds.ShellRiskScore) {
				shellSignals++
			}
		}
	}

	avgRisk := meanOf(risks)
	c.RiskScore = int(math.Round(avgRisk))

	// Pattern rules are independent; any subset may fire.
	if c.EntityCount > s.thresholds.ConcentrationEntities && c.AddressCount <= s.thresholds.ConcentrationMaxAddresses {
		c.Flags = append(c.Flags, fmt.Sprintf("high entity concentration at %s", seed.Address))
	}
	if avgRisk > s.thresholds.HighAvgRisk {
		c.Flags = append(c.Flags, fmt.Sprintf("high risk cluster near %s", seed.Address))
	}
	if shellSignals > s.thresholds.ShellSignals {
		c.Flags = append(c.Flags, fmt.Sprintf("potential shell company cluster at %s", seed.Address))
	}

	s.metrics.AddFlagsRaised(len(c.Flags))
	return c
}

func (s *Service) buildRegionCluster(seq int, region RegionSummary) Cluster {
	c := Cluster{
		ID:           fmt.Sprintf("region-%d", seq),
		SeedAddress:  region.Name,
		Center:       Coordinates{Lat: region.Lat, Lng: region.Lng},
		AddressIDs:   []string{},
		AddressCount: 1,
		EntityCount:  region.EntityCount,
		RiskScore:    int(math.Round(region.AvgRisk)),
		Flags:        []string{},
	}
	if region.EntityCount > s.thresholds.ConcentrationEntities {
		c.Flags = append(c.Flags, fmt.Sprintf("high entity concentration at %s", region.Name))
	}
	if region.AvgRisk > s.thresholds.HighAvgRisk {
		c.Flags = append(c.Flags, fmt.Sprintf("high risk cluster near %s", region.Name))
	}
	s.metrics.AddFlagsRaised(len(c.Flags))
	return c
}

// boundingBox frames the geocoded points with the padding margin. Returns
// nil when nothing is geocoded; there are no bounds to widen.
func (s *Service) boundingBox(points []AddressPoint, geocoded []int) *BoundingBox {
	if len(geocoded) == 0 {
		return nil
	}
	first := points[geocoded[0]]
	box := BoundingBox{
		MinLat: *first.Lat, MaxLat: *first.Lat,
		MinLng: *first.Lng, MaxLng: *first.Lng,
	}
	for _, i := range geocoded[1:] {
		p := points[i]
		box.MinLat = math.Min(box.MinLat, *p.Lat)
		box.MaxLat = math.Max(box.MaxLat, *p.Lat)
		box.MinLng = math.Min(box.MinLng, *p.Lng)
		box.MaxLng = math.Max(box.MaxLng, *p.Lng)
	}
	box.MinLat -= s.thresholds.PaddingDeg
	box.MaxLat += s.thresholds.PaddingDeg
	box.MinLng -= s.thresholds.PaddingDeg
	box.MaxLng += s.thresholds.PaddingDeg
	return &box
}

func (s *Service) buildStats(points []AddressPoint, clusterCount int) Stats {
	stats := Stats{
		TotalAddresses: len(points),
		ClusterCount:   clusterCount,
	}
	totalEntities := 0
	for _, p := range points {
		totalEntities += len(p.Entities)
		if p.RiskScore >= s.thresholds.HighRiskAddress {
			stats.HighRiskAddresses++
		}
	}
	if len(points) > 0 {
		stats.AvgEntitiesPerAddress = float64(totalEntities) / float64(len(points))
	}
	return stats
}

// addressRisk derives an address's risk as the mean of its entities' scores.
func addressRisk(p AddressPoint) float64 {
	if len(p.Entities) == 0 {
		return 0
	}
	risks := make([]float64, len(p.Entities))
	for i, e := range p.Entities {
		risks[i] = e.RiskScore
	}
	return meanOf(risks)
}

func looksLikeShell(e EntityRef, riskThreshold float64) bool {
	name := strings.ToLower(e.Name)
	for _, marker := range shellMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return e.RiskScore > riskThreshold
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
