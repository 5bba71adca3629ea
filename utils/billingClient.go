package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"time"
	"tradegate/config"
	"tradegate/models"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// billingClient builds a resty client with the retry policy the billing
// service expects. Transient failures retry with backoff; callers treat
// exhaustion as a stale-session condition, never as a fault to propagate.
func billingClient() *resty.Client {
	return resty.New().
		SetBaseURL(config.AppConfig.BillingApiURL).
		SetHeader("Authorization", "Bearer "+config.AppConfig.BillingApiKey).
		SetTimeout(5 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(4 * time.Second)
}

// FetchSubscriptionTier asks the billing service for a user's current tier
func FetchSubscriptionTier(userID uint) (string, error) {
	resp, err := billingClient().R().
		Get(fmt.Sprintf("/subscriptions/%d", userID))
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("billing service returned %d", resp.StatusCode())
	}

	var tierResp struct {
		Tier string `json:"tier"`
	}
	if err := json.Unmarshal(resp.Body(), &tierResp); err != nil {
		return "", err
	}
	if models.TierRank(tierResp.Tier) < 0 {
		return "", fmt.Errorf("billing service returned unknown tier %q", tierResp.Tier)
	}
	return tierResp.Tier, nil
}

// SyncSubscriptionTier refreshes the locally stored tier from billing. The
// gate reads the stored tier, so a successful sync is also the cache
// invalidation point after an upgrade.
func SyncSubscriptionTier(db *gorm.DB, userID uint) (string, error) {
	tier, err := FetchSubscriptionTier(userID)
	if err != nil {
		log.Printf("[BILLING] tier fetch failed for user=%d: %v", userID, err)
		return "", err
	}

	if err := db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("subscription_tier", tier).Error; err != nil {
		return "", err
	}

	log.Printf("[BILLING] user=%d tier synced to %s", userID, tier)
	return tier, nil
}
