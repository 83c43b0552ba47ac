package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeWidgetID computes a deterministic widget ID using SHA256.
// Formula: SHA256(campaign_id|widget_type|source_id)
// Returns hex-encoded hash (64 characters). The same source event always
// yields the same widget ID, so repeated aggregations are idempotent.
func ComputeWidgetID(campaignID, widgetType, sourceID string) string {
	data := fmt.Sprintf("%s|%s|%s", campaignID, widgetType, sourceID)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
