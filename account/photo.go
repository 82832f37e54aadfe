package account

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"starling/client"
)

// downloadPhoto fetches a base64-encoded photo resource and writes the
// decoded bytes to dest. Shared by spaces and savings goals.
func downloadPhoto(ctx context.Context, api *client.Client, endpoint, dest string) error {
	var rec struct {
		Base64EncodedPhoto string `json:"base64EncodedPhoto"`
	}
	if err := api.Get(ctx, endpoint, nil, &rec); err != nil {
		return fmt.Errorf("fetch photo: %w", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(rec.Base64EncodedPhoto)
	if err != nil {
		return fmt.Errorf("decode photo: %w", err)
	}
	if err := os.WriteFile(dest, decoded, 0o644); err != nil {
		return fmt.Errorf("write photo: %w", err)
	}
	return nil
}
