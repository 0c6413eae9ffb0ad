package businessflow

import (
	"context"

	"github.com/amirphl/linkhub/app/dto"
	"github.com/amirphl/linkhub/models"
	"github.com/amirphl/linkhub/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactFlow files contact messages under topics and lists them for the operator.
type ContactFlow interface {
	CreateTopic(ctx context.Context, req *dto.CreateTopicRequest) (*dto.CreateTopicResponse, error)
	CreateMessage(ctx context.Context, req *dto.CreateMessageRequest) error
	ListMessages(ctx context.Context, topicID uuid.UUID) ([]dto.MessageDTO, error)
}

type ContactFlowImpl struct {
	topicRepo   repository.TopicRepository
	messageRepo repository.MessageRepository
	tx          repository.Transactor
	log         *zap.Logger
}

// NewContactFlow wires the contact flow to its stores.
func NewContactFlow(topicRepo repository.TopicRepository, messageRepo repository.MessageRepository, tx repository.Transactor, log *zap.Logger) ContactFlow {
	return &ContactFlowImpl{
		topicRepo:   topicRepo,
		messageRepo: messageRepo,
		tx:          tx,
		log:         log,
	}
}

func (f *ContactFlowImpl) CreateTopic(ctx context.Context, req *dto.CreateTopicRequest) (*dto.CreateTopicResponse, error) {
	topic := &models.Topic{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if err := f.topicRepo.Save(ctx, topic); err != nil {
		f.log.Error("Failed to create topic", zap.String("name", req.Name), zap.Error(err))
		return nil, NewStoreError("TOPIC_CREATE_FAILED", "Failed to create topic", err)
	}
	return &dto.CreateTopicResponse{ID: topic.ID}, nil
}

// CreateMessage checks the topic and inserts the message in one transaction.
func (f *ContactFlowImpl) CreateMessage(ctx context.Context, req *dto.CreateMessageRequest) error {
	topicID, err := uuid.Parse(req.TopicID)
	if err != nil {
		return ErrTopicNotFound
	}

	return f.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		topic, err := f.topicRepo.ByID(txCtx, topicID)
		if err != nil {
			f.log.Error("Topic lookup failed", zap.String("topic_id", topicID.String()), zap.Error(err))
			return NewStoreError("TOPIC_LOOKUP_FAILED", "Failed to lookup topic", err)
		}
		if topic == nil {
			return ErrTopicNotFound
		}

		message := &models.Message{
			ID:      uuid.New(),
			TopicID: topicID,
			Email:   req.Email,
			Text:    req.Text,
		}
		if err := f.messageRepo.Save(txCtx, message); err != nil {
			f.log.Error("Failed to create message", zap.String("topic_id", topicID.String()), zap.Error(err))
			return NewStoreError("MESSAGE_CREATE_FAILED", "Failed to create message", err)
		}
		return nil
	})
}

func (f *ContactFlowImpl) ListMessages(ctx context.Context, topicID uuid.UUID) ([]dto.MessageDTO, error) {
	topic, err := f.topicRepo.ByID(ctx, topicID)
	if err != nil {
		f.log.Error("Topic lookup failed", zap.String("topic_id", topicID.String()), zap.Error(err))
		return nil, NewStoreError("TOPIC_LOOKUP_FAILED", "Failed to lookup topic", err)
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	rows, err := f.messageRepo.ListByTopic(ctx, topicID)
	if err != nil {
		f.log.Error("Failed to list messages", zap.String("topic_id", topicID.String()), zap.Error(err))
		return nil, NewStoreError("MESSAGE_LIST_FAILED", "Failed to list messages", err)
	}

	out := make([]dto.MessageDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToMessageDTO(*row))
	}
	return out, nil
}

// ToMessageDTO converts a message model to its API shape.
func ToMessageDTO(m models.Message) dto.MessageDTO {
	return dto.MessageDTO{
		ID:        m.ID,
		TopicID:   m.TopicID,
		Email:     m.Email,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}
