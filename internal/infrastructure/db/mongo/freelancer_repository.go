package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sbworks/marketplace/internal/core/domain"
)

const collectionFreelancers = "freelancers"

type FreelancerRepository struct {
	coll *mongo.Collection
}

func NewFreelancerRepository(db *mongo.Database) *FreelancerRepository {
	return &FreelancerRepository{coll: db.Collection(collectionFreelancers)}
}

type mongoFreelancer struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            string             `bson:"user_id"`
	Skills            []string           `bson:"skills"`
	Description       string             `bson:"description"`
	Funds             int64              `bson:"funds"`
	CurrentProjects   []string           `bson:"current_projects"`
	CompletedProjects []string           `bson:"completed_projects"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func (m mongoFreelancer) toDomain() *domain.FreelancerProfile {
	return &domain.FreelancerProfile{
		ID:                m.ID.Hex(),
		UserID:            m.UserID,
		Skills:            nonNil(m.Skills),
		Description:       m.Description,
		Funds:             m.Funds,
		CurrentProjects:   nonNil(m.CurrentProjects),
		CompletedProjects: nonNil(m.CompletedProjects),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *FreelancerRepository) Create(ctx context.Context, p *domain.FreelancerProfile) (*domain.FreelancerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFreelancer{
		ID:                primitive.NewObjectID(),
		UserID:            p.UserID,
		Skills:            nonNil(p.Skills),
		Description:       p.Description,
		Funds:             p.Funds,
		CurrentProjects:   nonNil(p.CurrentProjects),
		CompletedProjects: nonNil(p.CompletedProjects),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert freelancer profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FreelancerRepository) FindByID(ctx context.Context, id string) (*domain.FreelancerProfile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *FreelancerRepository) FindByUserID(ctx context.Context, userID string) (*domain.FreelancerProfile, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *FreelancerRepository) findOne(ctx context.Context, filter bson.M) (*domain.FreelancerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoFreelancer
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find freelancer profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FreelancerRepository) UpdateDetails(ctx context.Context, id string, skills []string, description string) (*domain.FreelancerProfile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"skills":      nonNil(skills),
		"description": description,
		"updated_at":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoFreelancer
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update freelancer profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FreelancerRepository) AssignProject(ctx context.Context, userID, projectID string) error {
	return r.updateByUser(ctx, userID, bson.M{
		"$addToSet": bson.M{"current_projects": projectID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *FreelancerRepository) CompleteProject(ctx context.Context, userID, projectID string, payout int64) error {
	return r.updateByUser(ctx, userID, bson.M{
		"$pull":     bson.M{"current_projects": projectID},
		"$addToSet": bson.M{"completed_projects": projectID},
		"$inc":      bson.M{"funds": payout},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *FreelancerRepository) updateByUser(ctx context.Context, userID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("update freelancer profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes enforces one profile per user.
func (r *FreelancerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
