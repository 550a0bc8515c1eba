package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
)

// ErrInvalidInput indicates invalid suggestion input.
var ErrInvalidInput = errors.New("invalid suggestion input")

const defaultModuleCount = 3

// Generator produces a structured module/task plan from a project
// description. The blueprint engine is the built-in implementation; a
// generative-text client can satisfy the same interface.
type Generator interface {
	Generate(ctx context.Context, description string, moduleCount int) ([]ModulePlan, error)
}

// Service produces task suggestions under the content-generation policy.
type Service struct {
	generator Generator
	guard     *authz.Guard
	logger    *slog.Logger
}

// NewService creates a suggestion service.
func NewService(generator Generator, guard *authz.Guard, logger *slog.Logger) *Service {
	return &Service{generator: generator, guard: guard, logger: logger}
}

// Request defines suggestion inputs. ProjectID is optional: when present,
// suggestions target an existing project and require ownership (or ADMIN);
// when absent, the role-based content-generation rule applies.
type Request struct {
	Description string
	ModuleCount int
	ProjectID   string
}

// Suggest returns a module/task plan for the described project.
func (s *Service) Suggest(ctx context.Context, caller identity.Caller, req Request) ([]ModulePlan, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: project description is required", ErrInvalidInput)
	}

	if req.ProjectID != "" {
		if _, err := s.guard.Authorize(ctx, caller, req.ProjectID, authz.OpSuggestForProject); err != nil {
			return nil, err
		}
	} else if !authz.AllowsByRole(authz.OpGenerateContent, caller) {
		return nil, fmt.Errorf("%w: %s", authz.ErrNotAuthorized, authz.Reason(authz.OpGenerateContent))
	}

	count := req.ModuleCount
	if count <= 0 {
		count = defaultModuleCount
	}

	plan, err := s.generator.Generate(ctx, req.Description, count)
	if err != nil {
		return nil, fmt.Errorf("generating plan: %w", err)
	}
	return plan, nil
}

// BlueprintGenerator matches the description against industry blueprints.
// Deterministic and offline; the SaaS blueprint is the default when no
// keyword matches.
type BlueprintGenerator struct{}

// Generate selects the best blueprint and trims it to moduleCount modules.
func (BlueprintGenerator) Generate(_ context.Context, description string, moduleCount int) ([]ModulePlan, error) {
	lowered := strings.ToLower(description)

	selected := blueprints[0]
	for _, b := range blueprints {
		if matchesAny(lowered, b.keywords) {
			selected = b
			break
		}
	}

	modules := selected.modules
	if moduleCount < len(modules) {
		modules = modules[:moduleCount]
	}
	return modules, nil
}

func matchesAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
