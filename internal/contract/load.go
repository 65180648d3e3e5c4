package contract

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/fnguard/internal/ctxlog"
	"github.com/vk/fnguard/internal/fsutil"
	"github.com/vk/fnguard/internal/funcid"
	"github.com/vk/fnguard/internal/schema"
)

// manifest mirrors the top-level structure of a contract manifest file.
type manifest struct {
	Contracts []*contractBlock `hcl:"contract,block"`
}

type contractBlock struct {
	Namespace   string        `hcl:"namespace,label"`
	Name        string        `hcl:"name,label"`
	Description string        `hcl:"description,optional"`
	Args        []*argBlock   `hcl:"arg,block"`
	Returns     *returnsBlock `hcl:"returns,block"`
}

type argBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Check       string         `hcl:"check,optional"`
	Description string         `hcl:"description,optional"`
}

type returnsBlock struct {
	Type  hcl.Expression `hcl:"type"`
	Check string         `hcl:"check,optional"`
}

// LoadPath discovers every .hcl manifest under path (a file or a directory)
// and registers the contracts it declares.
func (r *Registry) LoadPath(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading contract manifests...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		logger.Error("Failed to walk contracts path", "path", path, "error", err)
		return err
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl contract files found in path", "path", path)
		return nil
	}

	parser := hclparse.NewParser()
	loaded := 0
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse contract file %s: %w", filePath, diags)
		}
		n, err := r.loadFile(hclFile, filePath)
		if err != nil {
			return err
		}
		loaded += n
		logger.Debug("Loaded contracts from manifest file.", "file", filePath, "count", n)
	}

	logger.Info("Contract manifests loaded.", "files", len(filePaths), "contracts", loaded)
	return nil
}

// LoadSource registers the contracts declared in an in-memory manifest, with
// filename used for error positions only.
func (r *Registry) LoadSource(ctx context.Context, filename string, src []byte) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse contract source %s: %w", filename, diags)
	}
	n, err := r.loadFile(hclFile, filename)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Loaded contracts from source.", "file", filename, "count", n)
	return nil
}

func (r *Registry) loadFile(file *hcl.File, filename string) (int, error) {
	var m manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &m); diags.HasErrors() {
		return 0, fmt.Errorf("failed to decode contract file %s: %w", filename, diags)
	}

	for _, block := range m.Contracts {
		id := funcid.New(block.Namespace, block.Name)
		if _, exists := r.Lookup(id); exists {
			return 0, fmt.Errorf("in %s: contract for %q declared more than once", filename, id)
		}
		c, err := block.toContract()
		if err != nil {
			return 0, fmt.Errorf("in %s: contract %q: %w", filename, id, err)
		}
		r.Register(id, c)
	}
	return len(m.Contracts), nil
}

func (b *contractBlock) toContract() (*Contract, error) {
	params := make([]Param, 0, len(b.Args))
	for _, arg := range b.Args {
		ty, err := typeExprToCtyType(arg.Type)
		if err != nil {
			return nil, fmt.Errorf("arg %q: %w", arg.Name, err)
		}
		check, err := resolveCheck(arg.Check)
		if err != nil {
			return nil, fmt.Errorf("arg %q: %w", arg.Name, err)
		}
		params = append(params, Param{
			Name:        arg.Name,
			Type:        ty,
			Check:       check,
			Description: arg.Description,
		})
	}

	if b.Returns == nil {
		return nil, fmt.Errorf("missing required returns block")
	}
	retType, err := typeExprToCtyType(b.Returns.Type)
	if err != nil {
		return nil, fmt.Errorf("returns: %w", err)
	}
	retCheck, err := resolveCheck(b.Returns.Check)
	if err != nil {
		return nil, fmt.Errorf("returns: %w", err)
	}

	c := New(params, Return{Type: retType, Check: retCheck})
	c.Description = b.Description
	return c, nil
}

func resolveCheck(name string) (*schema.Check, error) {
	if name == "" {
		return nil, nil
	}
	check, ok := schema.CheckByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown check %q", name)
	}
	return check, nil
}
