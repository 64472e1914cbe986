package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// labels Rekognition tends to return for any food photo; they add no
// information, so they are dropped before handing off to the estimator.
var genericLabels = map[string]bool{
	"food": true, "meal": true, "dish": true, "plate": true,
	"cutlery": true, "lunch": true, "dinner": true, "breakfast": true,
}

type VisionService struct {
	client *rekognition.Client
}

func NewVisionService() (*VisionService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &VisionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectFood returns non-generic labels for a base64 data-URI photo,
// most confident first.
func (v *VisionService) DetectFood(dataURI string) ([]string, error) {
	idx := strings.Index(dataURI, ",")
	if idx < 0 || !strings.HasPrefix(dataURI, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(dataURI[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := v.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(8),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name == nil || genericLabels[strings.ToLower(*l.Name)] {
			continue
		}
		labels = append(labels, *l.Name)
	}
	if len(labels) == 0 {
		return nil, errors.New("no food detected in photo")
	}
	return labels, nil
}
