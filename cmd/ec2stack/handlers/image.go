package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/ec2stack/internal/provisioning/recipe"
)

// Image prints the AMI the image parameter currently resolves to in the
// target region.
func Image(ctx context.Context, g Globals) error {
	s, err := newSession(ctx, g, false)
	if err != nil {
		return err
	}

	ami, err := s.client.ResolveImageParameter(ctx, recipe.ImageParameterPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\n", ami)
	s.observer.Printf("Resolved %s in %s", recipe.ImageParameterPath, s.env.Region)
	return nil
}
