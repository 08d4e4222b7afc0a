package factory

import (
	"fmt"
	"sort"
	"strings"

	"hasher/pkg/hashing/core"
	"hasher/pkg/hashing/hardware"
	"hasher/pkg/hashing/methods/software"
	"hasher/pkg/simdsha256"
)

// HashMethodConfig contains configuration for hash method selection
type HashMethodConfig struct {
	// Preferred method order (highest priority first)
	PreferredOrder []string `json:"preferred_order"`

	// EnableFallback is stored with the config and saved to JSON.
	// selectBestMethod does not read it: it always walks the whole
	// PreferredOrder and ends at scalar, whatever this field holds.
	EnableFallback bool `json:"enable_fallback"`
}

// DefaultHashMethodConfig returns a sensible default configuration
func DefaultHashMethodConfig() *HashMethodConfig {
	return &HashMethodConfig{
		PreferredOrder: []string{
			"simd256", // 1. 8-lane AVX-equivalent search
			"simd128", // 2. 4-lane SSE2-equivalent search
			"scalar",  // 3. one-lane-at-a-time reference path
		},
		EnableFallback: true,
	}
}

var tierByName = map[string]simdsha256.Tier{
	"simd256": simdsha256.TierSIMD256,
	"simd128": simdsha256.TierSIMD128,
	"scalar":  simdsha256.TierScalar,
}

// HashMethodFactory creates and manages hash method instances
type HashMethodFactory struct {
	config   *HashMethodConfig
	methods  map[string]core.HashMethod
	best     core.HashMethod
	detected map[string]bool
}

// NewHashMethodFactory creates a new factory with the given configuration
func NewHashMethodFactory(config *HashMethodConfig) *HashMethodFactory {
	if config == nil {
		config = DefaultHashMethodConfig()
	}

	factory := &HashMethodFactory{
		config:   config,
		methods:  make(map[string]core.HashMethod),
		detected: make(map[string]bool),
	}

	factory.detectMethods()
	factory.selectBestMethod()

	return factory
}

// detectMethods performs SIMD tier detection and constructs a method
// for every tier regardless of availability, so GetDetectionReport can
// explain why a tier was skipped.
func (f *HashMethodFactory) detectMethods() {
	detector := hardware.NewDeviceDetector()
	detected := detector.DetectAvailableMethods()

	for name, tier := range tierByName {
		f.methods[name] = software.NewSoftwareMethod(tier)
		f.detected[name] = detected[name]
	}
}

// selectBestMethod chooses the best available method based on configuration
func (f *HashMethodFactory) selectBestMethod() {
	for _, methodName := range f.config.PreferredOrder {
		if method, exists := f.methods[methodName]; exists && method.IsAvailable() {
			f.best = method
			return
		}
	}

	// scalar is always available; fall back to it if nothing else matched.
	if scalarMethod, exists := f.methods["scalar"]; exists {
		f.best = scalarMethod
	}
}

// GetBestMethod returns the currently selected best hashing method
func (f *HashMethodFactory) GetBestMethod() core.HashMethod {
	return f.best
}

// GetMethod returns a specific hashing method by name
func (f *HashMethodFactory) GetMethod(name string) core.HashMethod {
	if method, exists := f.methods[name]; exists {
		return method
	}
	return nil
}

// GetAllMethods returns all available hashing methods
func (f *HashMethodFactory) GetAllMethods() map[string]core.HashMethod {
	result := make(map[string]core.HashMethod)
	for name, method := range f.methods {
		result[name] = method
	}
	return result
}

// GetAvailableMethods returns all available hashing methods
func (f *HashMethodFactory) GetAvailableMethods() map[string]core.HashMethod {
	result := make(map[string]core.HashMethod)
	for name, method := range f.methods {
		if method.IsAvailable() {
			result[name] = method
		}
	}
	return result
}

// GetDetectionReport returns a report of detected methods and their status
func (f *HashMethodFactory) GetDetectionReport() *DetectionReport {
	report := &DetectionReport{
		Methods:        make([]*MethodStatus, 0),
		BestMethod:     "none",
		TotalMethods:   len(f.methods),
		AvailableCount: 0,
	}

	methodNames := make([]string, 0, len(f.methods))
	for _, name := range f.config.PreferredOrder {
		if _, exists := f.methods[name]; exists {
			methodNames = append(methodNames, name)
		}
	}

	for _, name := range methodNames {
		method := f.methods[name]
		available := f.detected[name]
		caps := method.GetCapabilities()

		status := &MethodStatus{
			Name:         name,
			Available:    available,
			Priority:     f.getPriority(name),
			Capabilities: caps,
			Description:  f.getMethodDescription(name),
		}

		report.Methods = append(report.Methods, status)

		if available {
			report.AvailableCount++
		}
	}

	if f.best != nil {
		report.BestMethod = f.best.Name()
	}

	return report
}

// getPriority returns the priority index of a method
func (f *HashMethodFactory) getPriority(name string) int {
	for i, preferred := range f.config.PreferredOrder {
		if name == preferred {
			return i
		}
	}
	return 999
}

// getMethodDescription returns a human-readable description for a method
func (f *HashMethodFactory) getMethodDescription(name string) string {
	descriptions := map[string]string{
		"simd256": "8-lane search, the AVX-equivalent tier",
		"simd128": "4-lane search, the SSE2-equivalent tier",
		"scalar":  "one nonce at a time via simdsha256.Compress, always available",
	}

	if desc, exists := descriptions[name]; exists {
		return desc
	}
	return "unknown hashing method"
}

// InitializeBestMethod initializes the selected best method
func (f *HashMethodFactory) InitializeBestMethod() error {
	if f.best == nil {
		return fmt.Errorf("no method selected")
	}
	return f.best.Initialize()
}

// ShutdownAll shuts down all methods
func (f *HashMethodFactory) ShutdownAll() error {
	var errs []string

	for name, method := range f.methods {
		if err := method.Shutdown(); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ReinitializeDetection re-runs hardware detection and method selection
func (f *HashMethodFactory) ReinitializeDetection() {
	f.ShutdownAll()
	f.detectMethods()
	f.selectBestMethod()
}

// DetectionReport contains the results of hardware detection
type DetectionReport struct {
	Methods        []*MethodStatus `json:"methods"`
	BestMethod     string          `json:"best_method"`
	TotalMethods   int             `json:"total_methods"`
	AvailableCount int             `json:"available_count"`
}

// MethodStatus describes the status of a single hashing method
type MethodStatus struct {
	Name         string             `json:"name"`
	Available    bool               `json:"available"`
	Priority     int                `json:"priority"`
	Capabilities *core.Capabilities `json:"capabilities"`
	Description  string             `json:"description"`
}

// SortMethodsByPriority sorts methods by priority (helper for reports)
func SortMethodsByPriority(methods []*MethodStatus) {
	sort.Slice(methods, func(i, j int) bool {
		return methods[i].Priority < methods[j].Priority
	})
}
