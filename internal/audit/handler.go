package audit

import (
	"encoding/json"
	"fmt"

	"gise-backend/internal/database"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"createdAt"`
	UserID      uint               `json:"userId"`
	UserEmail   string             `json:"userEmail"`
	EntityType  string             `json:"entityType"`
	EntityID    string             `json:"entityId"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	Before      any                `json:"before"`
	After       any                `json:"after"`
}

func toResponse(entry models.AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:          entry.ID,
		CreatedAt:   entry.CreatedAt.Format("2006-01-02 15:04:05"),
		UserID:      entry.UserID,
		UserEmail:   entry.UserEmail,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Action:      entry.Action,
		Description: entry.Description,
	}
	if entry.BeforeData != "" {
		_ = json.Unmarshal([]byte(entry.BeforeData), &resp.Before)
	}
	if entry.AfterData != "" {
		_ = json.Unmarshal([]byte(entry.AfterData), &resp.After)
	}
	return resp
}

// GET /api/audit-logs?entityType=settlement&entityId=...&userId=1
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if entityType := c.Query("entityType"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityID := c.Query("entityId"); entityID != "" {
			dbq = dbq.Where("entity_id = ?", entityID)
		}
		if userIDStr := c.Query("userId"); userIDStr != "" {
			var uid uint
			if _, err := fmt.Sscan(userIDStr, &uid); err == nil && uid > 0 {
				dbq = dbq.Where("user_id = ?", uid)
			}
		}
		if action := c.Query("action"); action != "" {
			dbq = dbq.Where("action = ?", action)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Limit(500).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, entry := range logs {
			resp = append(resp, toResponse(entry))
		}

		return c.JSON(resp)
	}
}
