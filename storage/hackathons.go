package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type HackathonStorage interface {
	Get(ctx context.Context, id string) (*Hackathon, error)
	GetAll(ctx context.Context) ([]*Hackathon, error)
	GetByOrganizer(ctx context.Context, organizerID string) ([]*Hackathon, error)
	Create(ctx context.Context, h *Hackathon) error
	Save(ctx context.Context, h *Hackathon) error
	Delete(ctx context.Context, id string) error
}

type DynamoHackathonStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoHackathonStorage) Get(ctx context.Context, id string) (*Hackathon, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("HACKATHON: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("HACKATHON: GET storage failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var h *Hackathon
	if err := attributevalue.UnmarshalMap(out.Item, &h); err != nil {
		logging.Log.Errorf("HACKATHON: failed to unmarshal result: %v", err)
		return nil, err
	}
	return h, nil
}

func (s *DynamoHackathonStorage) GetAll(ctx context.Context) ([]*Hackathon, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("HACKATHON: scan failed: %v", err)
		return nil, err
	}

	var hackathons []*Hackathon
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &hackathons); err != nil {
		logging.Log.Errorf("HACKATHON: failed to unmarshal list: %v", err)
		return nil, err
	}
	return hackathons, nil
}

func (s *DynamoHackathonStorage) GetByOrganizer(ctx context.Context, organizerID string) ([]*Hackathon, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("OrganizerID = :org"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":org": &types.AttributeValueMemberS{Value: organizerID},
		},
	})
	if err != nil {
		logging.Log.Errorf("HACKATHON: scan by organizer failed: %v", err)
		return nil, err
	}

	var hackathons []*Hackathon
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &hackathons); err != nil {
		logging.Log.Errorf("HACKATHON: failed to unmarshal list: %v", err)
		return nil, err
	}
	return hackathons, nil
}

func (s *DynamoHackathonStorage) Create(ctx context.Context, h *Hackathon) error {
	now := time.Now().UTC()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
	h.Version = 1

	item, err := attributevalue.MarshalMap(h)
	if err != nil {
		logging.Log.Errorf("HACKATHON: failed to marshal hackathon: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("HACKATHON: PUT storage failed: %v", err)
		return err
	}
	return nil
}

// Save writes the full document back, conditioned on the version it was read
// at. A concurrent writer bumps the version first and this write fails with
// ErrVersionConflict instead of clobbering newer state. This is the
// authoritative guard behind the single-active-round invariant: round
// transitions are validated against a snapshot, and the conditional write
// rejects the snapshot going stale.
func (s *DynamoHackathonStorage) Save(ctx context.Context, h *Hackathon) error {
	readVersion := h.Version
	h.Version = readVersion + 1
	h.UpdatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(h)
	if err != nil {
		h.Version = readVersion
		logging.Log.Errorf("HACKATHON: failed to marshal hackathon: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(PK) AND Version = :read"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":read": &types.AttributeValueMemberN{Value: strconv.Itoa(readVersion)},
		},
	})
	if err != nil {
		h.Version = readVersion
		if isConditionalCheckFailed(err) {
			logging.Log.Warnf("HACKATHON: version conflict saving %s at version %d", h.ID, readVersion)
			return ErrVersionConflict
		}
		logging.Log.Errorf("HACKATHON: conditional PUT failed: %v", err)
		return err
	}
	return nil
}

func (s *DynamoHackathonStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("HACKATHON: failed to marshal key: %v", err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("HACKATHON: DEL storage item failed: %v", err)
		return err
	}
	return nil
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var txc *types.TransactionCanceledException
	return errors.As(err, &txc)
}
