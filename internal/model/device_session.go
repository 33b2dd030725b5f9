package model

import (
	"time"
)

// DeviceType classifies the device a session was opened from.
type DeviceType string

const (
	DeviceTypeMobile  DeviceType = "mobile"
	DeviceTypeTablet  DeviceType = "tablet"
	DeviceTypeDesktop DeviceType = "desktop"
	DeviceTypeUnknown DeviceType = "unknown"
)

// DeviceSession represents one logged-in device/browser instance for a user.
// At most Config.MaxDeviceSessions sessions may be active per user; the
// oldest one is evicted when a new login would exceed the cap.
type DeviceSession struct {
	ID                int        `json:"id"`
	UserID            int        `json:"user_id"`
	DeviceFingerprint string     `json:"device_fingerprint"`
	DeviceName        string     `json:"device_name,omitempty"`
	DeviceType        DeviceType `json:"device_type,omitempty"`
	Browser           string     `json:"browser,omitempty"`
	IPAddress         string     `json:"ip_address,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	LastActive        time.Time  `json:"last_active"`
	IsActive          bool       `json:"is_active"`
}

// CreateDeviceSessionRequest is the payload for registering a device session.
type CreateDeviceSessionRequest struct {
	DeviceFingerprint string     `json:"device_fingerprint" binding:"required,max=255"`
	DeviceName        string     `json:"device_name" binding:"omitempty,max=100"`
	DeviceType        DeviceType `json:"device_type" binding:"omitempty,oneof=mobile tablet desktop unknown"`
	Browser           string     `json:"browser" binding:"omitempty,max=50"`
	IPAddress         string     `json:"ip_address" binding:"omitempty,max=50"`
}
