package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/ec2stack/internal/deploy"
	"github.com/imamik/ec2stack/internal/lookup"
	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/provisioning/recipe"
	"github.com/imamik/ec2stack/internal/util/naming"
)

// SynthOptions controls template synthesis.
type SynthOptions struct {
	// NoCache forces a live default VPC lookup.
	NoCache bool
	// ClearContext empties the context file before synthesizing.
	ClearContext bool
	// Upload copies the template to the configured artifact bucket.
	Upload bool
}

// Factory function variables for synth - can be replaced in tests.
var (
	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// openContextCache opens the lookup cache.
	openContextCache = lookup.Open

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// mkdirAll creates the output directory (for testing injection).
	mkdirAll = os.MkdirAll
)

// synthesis is a synthesized and written template.
type synthesis struct {
	body        []byte
	fingerprint string
	path        string
}

// request builds the deploy request for s.
func (out *synthesis) request(s *session) deploy.Request {
	return deploy.Request{
		StackName:    s.cfg.StackName,
		TemplateBody: out.body,
		Fingerprint:  out.fingerprint,
		Tags:         s.cfg.Tags,
	}
}

// Synth runs the recipe and writes the template to the output directory.
func Synth(ctx context.Context, g Globals, opts SynthOptions) error {
	s, err := newSession(ctx, g, false)
	if err != nil {
		return err
	}

	out, err := synthesize(ctx, s, opts)
	if err == nil && opts.Upload {
		err = uploadTemplate(ctx, s, out)
	}
	if err := s.finish("synth", err); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\n", out.path)
	return nil
}

func synthesize(ctx context.Context, s *session, opts SynthOptions) (*synthesis, error) {
	cache, err := openContextCache(s.cfg.ContextFile)
	if err != nil {
		return nil, err
	}
	if opts.ClearContext {
		s.observer.Printf("Clearing context file %s", cache.Path())
		if err := cache.Clear(); err != nil {
			return nil, err
		}
	}

	resolver := &lookup.Resolver{Network: s.client, Cache: cache, NoCache: opts.NoCache}
	pCtx := newProvisioningContext(ctx, s.cfg, s.env, resolver)
	pCtx.Observer = s.observer
	pCtx.Metrics = s.metrics

	tmpl, err := recipe.Synthesize(pCtx)
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}
	if err := cache.Save(); err != nil {
		return nil, err
	}

	body, err := tmpl.Body(s.cfg.TemplateFormat)
	if err != nil {
		return nil, err
	}
	fingerprint, err := tmpl.Fingerprint()
	if err != nil {
		return nil, err
	}

	if err := mkdirAll(s.cfg.OutputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(s.cfg.OutputDir, naming.TemplateFile(s.cfg.StackName, s.cfg.TemplateFormat))
	if err := writeFile(path, body, 0600); err != nil {
		return nil, fmt.Errorf("failed to write template: %w", err)
	}
	s.observer.Printf("Template written to %s (%d bytes)", path, len(body))

	return &synthesis{body: body, fingerprint: fingerprint, path: path}, nil
}

func uploadTemplate(ctx context.Context, s *session, out *synthesis) error {
	if s.cfg.ArtifactBucket == "" {
		return fmt.Errorf("--upload requires artifact_bucket in the configuration")
	}
	key := naming.ArtifactKey(s.cfg.StackName, out.fingerprint)
	url, err := s.client.PutTemplate(ctx, s.cfg.ArtifactBucket, key, out.body)
	if err != nil {
		return err
	}
	s.observer.Printf("Template uploaded to %s", url)
	return nil
}
