package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// WorldIDClient verifies World ID proofs against the developer portal API
type WorldIDClient struct {
	client    *http.Client
	appID     string
	action    string
	verifyURL string
}

func NewWorldIDClient(appID, action, verifyURL string) *WorldIDClient {
	return &WorldIDClient{
		client:    &http.Client{Timeout: 10 * time.Second},
		appID:     appID,
		action:    action,
		verifyURL: strings.TrimSuffix(verifyURL, "/"),
	}
}

type verifyRequest struct {
	NullifierHash     string `json:"nullifier_hash"`
	MerkleRoot        string `json:"merkle_root"`
	Proof             string `json:"proof"`
	VerificationLevel string `json:"verification_level"`
	Action            string `json:"action"`
}

// Verify submits the proof bundle to the verifier. A rejected proof returns
// (false, nil); transport and server failures return an error.
func (c *WorldIDClient) Verify(ctx context.Context, nullifierHash, merkleRoot, proof, verificationLevel string) (bool, error) {
	body, err := json.Marshal(verifyRequest{
		NullifierHash:     nullifierHash,
		MerkleRoot:        merkleRoot,
		Proof:             proof,
		VerificationLevel: verificationLevel,
		Action:            c.action,
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal verify request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.verifyURL, c.appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return false, fmt.Errorf("failed to create verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach world id verifier: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		respBody, _ := io.ReadAll(resp.Body)
		log.Info().Int("status", resp.StatusCode).Str("body", string(respBody)).
			Msg("world id proof rejected")
		return false, nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("world id verifier returned status %d: %s", resp.StatusCode, string(respBody))
	}
}
