// Package awsec2 wraps the EC2 control-plane calls this service issues:
// a batched describe, start, stop, and the override tag write/delete.
package awsec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/gatmbarz123/ec2-manager/internal/override"
)

// API is the subset of the EC2 SDK surface the client uses. Tests inject a
// fake implementation; production uses *ec2.Client.
type API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
	DeleteTags(ctx context.Context, params *ec2.DeleteTagsInput, optFns ...func(*ec2.Options)) (*ec2.DeleteTagsOutput, error)
}

// Client is the long-lived EC2 adapter shared by all requests. The
// underlying SDK client is safe for concurrent use.
type Client struct {
	api API
}

// NewClient builds a Client from the default AWS credential chain (same
// credentials `aws ec2` would use from the terminal).
func NewClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Client{api: ec2.NewFromConfig(cfg)}, nil
}

// NewClientWithAPI wires an explicit API implementation. Used by tests.
func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// Observation is one instance as reported by the provider.
type Observation struct {
	ID    string
	State string
	Tags  map[string]string
}

// DescribeFleet issues a single batched describe for the given IDs and
// flattens the reservation/instance nesting into observations.
func (c *Client) DescribeFleet(ctx context.Context, ids []string) ([]Observation, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	resp, err := c.api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: ids,
	})
	if err != nil {
		return nil, fmt.Errorf("describe instances: %w", err)
	}

	var out []Observation
	for _, reservation := range resp.Reservations {
		for _, inst := range reservation.Instances {
			obs := Observation{
				ID:   aws.ToString(inst.InstanceId),
				Tags: make(map[string]string, len(inst.Tags)),
			}
			if inst.State != nil {
				obs.State = string(inst.State.Name)
			}
			for _, tag := range inst.Tags {
				obs.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
			}
			out = append(out, obs)
		}
	}
	return out, nil
}

func (c *Client) Start(ctx context.Context, id string) error {
	_, err := c.api.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return fmt.Errorf("start %s: %w", id, err)
	}
	return nil
}

func (c *Client) Stop(ctx context.Context, id string) error {
	_, err := c.api.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return fmt.Errorf("stop %s: %w", id, err)
	}
	return nil
}

// SetOverride writes the scheduler-override tag. Issued separately from
// Start; a crash between the two leaves the instance started but untagged.
func (c *Client) SetOverride(ctx context.Context, id, until string) error {
	_, err := c.api.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{id},
		Tags: []ec2types.Tag{
			{Key: aws.String(override.TagKey), Value: aws.String(until)},
		},
	})
	if err != nil {
		return fmt.Errorf("tag %s: %w", id, err)
	}
	return nil
}

// ClearOverride deletes the scheduler-override tag by key. Deleting a tag
// that does not exist is not an error on the EC2 side.
func (c *Client) ClearOverride(ctx context.Context, id string) error {
	_, err := c.api.DeleteTags(ctx, &ec2.DeleteTagsInput{
		Resources: []string{id},
		Tags: []ec2types.Tag{
			{Key: aws.String(override.TagKey)},
		},
	})
	if err != nil {
		return fmt.Errorf("untag %s: %w", id, err)
	}
	return nil
}
