package hardware

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"

	"hasher/pkg/hashing/core"
	"hasher/pkg/simdsha256"
)

// DeviceDetector performs capability detection for the SIMD tiers the
// software method can be driven at, plus host telemetry used to
// populate HardwareInfo.
type DeviceDetector struct {
	detectedMethods map[string]bool
	capabilities    map[string]*core.Capabilities
}

// NewDeviceDetector creates a new hardware detector
func NewDeviceDetector() *DeviceDetector {
	return &DeviceDetector{
		detectedMethods: make(map[string]bool),
		capabilities:    make(map[string]*core.Capabilities),
	}
}

// DetectAvailableMethods probes SIMD capability tiers. Scalar is always
// available; simd128/simd256 availability follows the host's AVX/SSE2
// feature bits (spec.md §4.2, the one capability-probe primitive
// exposed above the core).
func (d *DeviceDetector) DetectAvailableMethods() map[string]bool {
	caps := simdsha256.Probe()
	info := hostInfo(caps)

	d.detectTier("simd256", caps.SIMD256, simdsha256.TierSIMD256, info, caps.Features)
	d.detectTier("simd128", caps.SIMD128, simdsha256.TierSIMD128, info, caps.Features)
	d.detectTier("scalar", caps.Scalar, simdsha256.TierScalar, info, caps.Features)

	return d.detectedMethods
}

func (d *DeviceDetector) detectTier(name string, available bool, tier simdsha256.Tier, info *core.HardwareInfo, features []string) {
	d.detectedMethods[name] = available

	reason := ""
	if !available {
		reason = fmt.Sprintf("host does not report the feature bits required for %s", name)
	}

	d.capabilities[name] = &core.Capabilities{
		Name:            fmt.Sprintf("SIMD %s (W=%d)", strings.ToUpper(name), tier.Width()),
		IsHardware:      false,
		ProductionReady: available,
		LaneWidth:       tier.Width(),
		MaxBatchSize:    max(tier.Width(), 1),
		HardwareInfo:    info,
		Reason:          reason,
	}
}

// hostInfo collects CPU model and core count via gopsutil, falling back
// to an empty model string if the platform doesn't expose one (e.g.
// inside some containers).
func hostInfo(caps simdsha256.Capabilities) *core.HardwareInfo {
	info := &core.HardwareInfo{
		Features: caps.Features,
		Metadata: map[string]string{},
	}

	infoStats, err := cpu.Info()
	if err != nil || len(infoStats) == 0 {
		info.Metadata["probe_error"] = fmt.Sprintf("%v", err)
		return info
	}

	info.Model = infoStats[0].ModelName
	info.CoreCount = len(infoStats)
	info.Metadata["vendor"] = infoStats[0].VendorID
	return info
}

// GetCapabilities returns capabilities for a specific tier.
func (d *DeviceDetector) GetCapabilities(method string) *core.Capabilities {
	if caps, exists := d.capabilities[method]; exists {
		return caps
	}
	return &core.Capabilities{
		Name:            method,
		IsHardware:      false,
		ProductionReady: false,
		Reason:          "unknown method",
	}
}

// GetAllCapabilities returns all detected capabilities
func (d *DeviceDetector) GetAllCapabilities() map[string]*core.Capabilities {
	result := make(map[string]*core.Capabilities)
	for method, caps := range d.capabilities {
		result[method] = caps
	}
	return result
}

// GetDetectionSummary returns a human-readable summary
func (d *DeviceDetector) GetDetectionSummary() string {
	var builder strings.Builder

	builder.WriteString("SIMD Tier Detection Summary:\n")
	builder.WriteString("=============================\n\n")

	for _, method := range []string{"simd256", "simd128", "scalar"} {
		available, known := d.detectedMethods[method]
		if !known {
			continue
		}
		status := "UNAVAILABLE"
		if available {
			status = "AVAILABLE"
		}

		caps := d.capabilities[method]
		builder.WriteString(fmt.Sprintf("%-10s %-12s - %s\n", method, status, caps.Name))
		if !available && caps.Reason != "" {
			builder.WriteString(fmt.Sprintf("           reason: %s\n", caps.Reason))
		}
	}

	availableCount := 0
	for _, available := range d.detectedMethods {
		if available {
			availableCount++
		}
	}
	builder.WriteString(fmt.Sprintf("\nTotal tiers: %d, available: %d\n", len(d.detectedMethods), availableCount))

	return builder.String()
}
