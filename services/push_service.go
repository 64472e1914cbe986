package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/badinlee/sister-fitness/models"
	"github.com/badinlee/sister-fitness/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"
)

type PushService struct {
	db             *gorm.DB
	sns            *awssns.Client
	fcmPlatformArn string
}

func NewPushService(db *gorm.DB) (*PushService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &PushService{
		db:             db,
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: os.Getenv("SNS_FCM_ARN"),
	}, nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

// RegisterDevice creates (or re-enables) the SNS endpoint for a device
// token. Hashing keeps raw tokens out of the database.
func (p *PushService) RegisterDevice(userID uint, req RegisterDeviceReq) error {
	platform := strings.ToLower(req.Platform)
	if platform != "android" && platform != "ios" {
		return errors.New("unknown platform")
	}
	if p.fcmPlatformArn == "" {
		return errors.New("SNS_FCM_ARN not set")
	}

	hash := tokenHash(req.Token)
	var dev models.UserDevice
	err := p.db.Where("user_id = ? AND token_hash = ?", userID, hash).First(&dev).Error
	if err == nil {
		if !dev.Enabled {
			dev.Enabled = true
			return p.db.Save(&dev).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	out, err := p.sns.CreatePlatformEndpoint(context.TODO(), &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.fcmPlatformArn),
		Token:                  aws.String(req.Token),
	})
	if err != nil {
		return err
	}

	dev = models.UserDevice{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   hash,
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
	}
	return p.db.Create(&dev).Error
}

// PushToUser sends a notification to every enabled device. Errors are
// logged, never propagated; push is a courtesy, not a contract.
func (p *PushService) PushToUser(userID uint, title, body string, data map[string]string) {
	var devices []models.UserDevice
	if err := p.db.
		Where("user_id = ? AND enabled = ?", userID, true).
		Find(&devices).Error; err != nil {
		utils.Log.Warnf("list devices for push: %v", err)
		return
	}

	payload := map[string]any{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	}
	inner, _ := json.Marshal(payload)
	msg, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(inner),
	})

	for _, d := range devices {
		_, err := p.sns.Publish(context.TODO(), &awssns.PublishInput{
			TargetArn:        aws.String(d.EndpointARN),
			Message:          aws.String(string(msg)),
			MessageStructure: aws.String("json"),
		})
		if err != nil {
			utils.Log.Warnf("push to device %d: %v", d.ID, err)
		}
	}
}
