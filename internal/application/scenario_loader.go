package application

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/dynaverify/ddsv/internal/domain"
	"github.com/dynaverify/ddsv/internal/ports"
)

// CompiledScenario is the fully built, ready-to-run form of a
// ScenarioConfig: a shared initial valuation and the process set
// ConcurrentComposition consumes.
// WARNING: a CompiledScenario may be shared from the loader's cache.
// Its Processes and R0 must not be mutated by callers.
type CompiledScenario struct {
	Name      string
	R0        domain.Valuation
	Processes []domain.Process
	MaxStates int
}

// ScenarioLoader parses, validates, and compiles scenario YAML into
// CompiledScenario values, caching compiled results by the SHA-256 hash of
// their normalized configuration so identical scenario files are compiled
// once regardless of how many callers load them concurrently.
type ScenarioLoader struct {
	validator *validator.Validate
	registry  ports.PrimitiveRegistry

	cacheMu sync.RWMutex
	cache   map[string]*CompiledScenario

	sf singleflight.Group
}

// NewScenarioLoader returns a loader that resolves guard/action kinds
// through registry.
func NewScenarioLoader(registry ports.PrimitiveRegistry) *ScenarioLoader {
	return &ScenarioLoader{
		validator: validator.New(),
		registry:  registry,
		cache:     make(map[string]*CompiledScenario),
	}
}

// LoadFromFile loads and compiles a scenario from a YAML file on disk.
func (sl *ScenarioLoader) LoadFromFile(path string) (*CompiledScenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return sl.load(data)
}

// LoadFromReader loads and compiles a scenario from any io.Reader.
func (sl *ScenarioLoader) LoadFromReader(r io.Reader) (*CompiledScenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario data: %w", err)
	}
	return sl.load(data)
}

func (sl *ScenarioLoader) load(data []byte) (*CompiledScenario, error) {
	config, err := parseScenarioYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	hash, err := sl.hashConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to hash scenario config: %w", err)
	}

	v, err, _ := sl.sf.Do(hash, func() (any, error) {
		if cached, ok := sl.getCached(hash); ok {
			return cached, nil
		}

		if err := sl.validator.Struct(config); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
		if err := validateScenarioSemantics(config); err != nil {
			return nil, fmt.Errorf("semantic validation failed: %w", err)
		}

		compiled, err := sl.compile(config)
		if err != nil {
			return nil, fmt.Errorf("failed to compile scenario: %w", err)
		}

		sl.setCached(hash, compiled)
		return compiled, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*CompiledScenario), nil
}

// parseScenarioYAML decodes YAML bytes into a ScenarioConfig in strict
// mode, rejecting fields the schema doesn't recognize.
func parseScenarioYAML(data []byte) (*ScenarioConfig, error) {
	var config ScenarioConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("YAML decode failed: %w", err)
	}
	return &config, nil
}

// validateScenarioSemantics checks cross-field constraints struct tags
// can't express: transition targets must resolve to a location declared
// somewhere in the same process.
func validateScenarioSemantics(config *ScenarioConfig) error {
	for _, p := range config.Processes {
		known := make(map[string]struct{}, len(p.Locations))
		for _, loc := range p.Locations {
			known[loc.Name] = struct{}{}
		}
		for _, loc := range p.Locations {
			for _, t := range loc.Transitions {
				if _, ok := known[t.Target]; !ok {
					return fmt.Errorf("process %s: transition %s targets undeclared location %s", p.Name, t.Label, t.Target)
				}
			}
		}
	}
	return nil
}

// compile turns a validated ScenarioConfig into a CompiledScenario,
// resolving every guard and action reference through the loader's
// registry and building one domain.Process per configured process.
func (sl *ScenarioLoader) compile(config *ScenarioConfig) (*CompiledScenario, error) {
	processes := make([]domain.Process, len(config.Processes))
	for i, pc := range config.Processes {
		entries := make([]domain.LocationSpec, len(pc.Locations))
		for j, lc := range pc.Locations {
			trans := make([]domain.Trans, len(lc.Transitions))
			for k, tc := range lc.Transitions {
				guard, err := sl.resolveGuard(tc.Guard)
				if err != nil {
					return nil, fmt.Errorf("process %s location %s transition %s: %w", pc.Name, lc.Name, tc.Label, err)
				}
				action, err := sl.resolveAction(tc.Action)
				if err != nil {
					return nil, fmt.Errorf("process %s location %s transition %s: %w", pc.Name, lc.Name, tc.Label, err)
				}
				trans[k] = domain.NewTrans(domain.Label(tc.Label), domain.Location(tc.Target), guard, action)
			}
			entries[j] = domain.LocationSpec{Location: domain.Location(lc.Name), Transitions: trans}
		}

		p, err := domain.NewProcess(pc.Name, entries)
		if err != nil {
			return nil, err
		}
		processes[i] = p
	}

	return &CompiledScenario{
		Name:      config.Name,
		R0:        domain.NewIntEnv(config.Variables),
		Processes: processes,
		MaxStates: config.MaxStates,
	}, nil
}

func (sl *ScenarioLoader) resolveGuard(pc *PrimitiveConfig) (domain.GuardFunc, error) {
	if pc == nil {
		return domain.AlwaysTrue, nil
	}
	params, err := decodeParams(pc.Params)
	if err != nil {
		return nil, err
	}
	return sl.registry.BuildGuard(pc.Kind, params)
}

func (sl *ScenarioLoader) resolveAction(pc *PrimitiveConfig) (domain.ActionFunc, error) {
	if pc == nil {
		return domain.Identity, nil
	}
	params, err := decodeParams(pc.Params)
	if err != nil {
		return nil, err
	}
	return sl.registry.BuildAction(pc.Kind, params)
}

func decodeParams(node yaml.Node) (map[string]any, error) {
	var params map[string]any
	if node.Kind == 0 {
		return nil, nil
	}
	if err := node.Decode(&params); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	return params, nil
}

// hashConfig computes the SHA-256 hash of config re-encoded with a fixed
// indent, so differences in indentation, quoting or key order outside
// guard/action params still hit the cache. Params are kept as raw YAML
// nodes, so their flow-or-block style and any comments inside them are
// part of the encoding and change the hash.
func (sl *ScenarioLoader) hashConfig(config *ScenarioConfig) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

func (sl *ScenarioLoader) getCached(hash string) (*CompiledScenario, bool) {
	sl.cacheMu.RLock()
	defer sl.cacheMu.RUnlock()
	c, ok := sl.cache[hash]
	return c, ok
}

func (sl *ScenarioLoader) setCached(hash string, compiled *CompiledScenario) {
	sl.cacheMu.Lock()
	defer sl.cacheMu.Unlock()
	sl.cache[hash] = compiled
}

// ClearCache drops every cached compiled scenario, forcing subsequent
// loads to recompile from source.
func (sl *ScenarioLoader) ClearCache() {
	sl.cacheMu.Lock()
	defer sl.cacheMu.Unlock()
	sl.cache = make(map[string]*CompiledScenario)
}
