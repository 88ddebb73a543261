package domain

import (
	"fmt"
	"strings"
)

// EntityLevel é o nível de reporte da Graph API
type EntityLevel string

const (
	LevelAccount  EntityLevel = "account"
	LevelCampaign EntityLevel = "campaign"
	LevelAdSet    EntityLevel = "adset"
	LevelAd       EntityLevel = "ad"
)

func ParseEntityLevel(value string) (EntityLevel, error) {
	switch level := EntityLevel(strings.ToLower(strings.TrimSpace(value))); level {
	case LevelAccount, LevelCampaign, LevelAdSet, LevelAd:
		return level, nil
	case "":
		return LevelCampaign, nil
	default:
		return "", fmt.Errorf("invalid level %q: expected account, campaign, adset or ad", value)
	}
}

// ParentLevel é o nível cujo id filtra o nível atual
func (l EntityLevel) ParentLevel() EntityLevel {
	switch l {
	case LevelAdSet:
		return LevelCampaign
	case LevelAd:
		return LevelAdSet
	default:
		return ""
	}
}

// EntityStatus cobre os status configurados e os effective_status da Meta
type EntityStatus string

const (
	StatusActive   EntityStatus = "ACTIVE"
	StatusPaused   EntityStatus = "PAUSED"
	StatusDeleted  EntityStatus = "DELETED"
	StatusArchived EntityStatus = "ARCHIVED"

	StatusCampaignPaused EntityStatus = "CAMPAIGN_PAUSED"
	StatusAdSetPaused    EntityStatus = "ADSET_PAUSED"
	StatusInProcess      EntityStatus = "IN_PROCESS"
	StatusWithIssues     EntityStatus = "WITH_ISSUES"
	StatusPendingReview  EntityStatus = "PENDING_REVIEW"
	StatusDisapproved    EntityStatus = "DISAPPROVED"
)

// ParseWritableStatus valida os únicos status aceitos numa atualização
func ParseWritableStatus(value string) (EntityStatus, error) {
	switch status := EntityStatus(strings.ToUpper(strings.TrimSpace(value))); status {
	case StatusActive, StatusPaused, StatusArchived, StatusDeleted:
		return status, nil
	default:
		return "", fmt.Errorf("invalid status %q: expected ACTIVE, PAUSED, ARCHIVED or DELETED", value)
	}
}

// AdEntity representa uma campanha, conjunto de anúncios ou anúncio.
// ParentID é só uma referência: adset -> campanha, ad -> adset.
type AdEntity struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Level           EntityLevel          `json:"level"`
	Status          EntityStatus         `json:"status"`
	EffectiveStatus EntityStatus         `json:"effective_status,omitempty"`
	ParentID        string               `json:"parent_id,omitempty"`
	CampaignID      string               `json:"campaign_id,omitempty"`
	Objective       string               `json:"objective,omitempty"`
	DailyBudget     string               `json:"daily_budget,omitempty"`
	LifetimeBudget  string               `json:"lifetime_budget,omitempty"`
	Insights        *PerformanceSnapshot `json:"insights,omitempty"`
}
