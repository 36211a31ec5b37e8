package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/realtime"
	"gorm.io/gorm"
)

// In-memory fakes standing in for the gorm repositories. They enforce
// the same uniqueness rules the real schema does.

type fakePostRepo struct {
	posts  map[uint64]*model.Post
	photos map[uint64][]model.PostPhoto
	nextID uint64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[uint64]*model.Post{}, photos: map[uint64][]model.PostPhoto{}}
}

func (f *fakePostRepo) Create(_ context.Context, post *model.Post, photos []model.PostPhoto) error {
	f.nextID++
	post.ID = f.nextID
	post.CreatedAt = time.Now()
	cp := *post
	f.posts[post.ID] = &cp
	f.photos[post.ID] = photos
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id uint64) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) List(_ context.Context, _, _ int, status model.PostStatus) ([]model.Post, int64, error) {
	var out []model.Post
	for _, p := range f.posts {
		if status == "" || p.Status == status {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePostRepo) ListBySeller(_ context.Context, sellerUID string) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if p.SellerUID == sellerUID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) Search(_ context.Context, _ []string, _, _ int) ([]model.Post, int64, error) {
	return nil, 0, nil
}

func (f *fakePostRepo) Update(_ context.Context, post *model.Post) error {
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakePostRepo) MarkSold(_ context.Context, id uint64, at time.Time) (bool, error) {
	p, ok := f.posts[id]
	if !ok || p.Status != model.PostStatusActive {
		return false, nil
	}
	p.Status = model.PostStatusSold
	p.SoldAt = &at
	return true, nil
}

func (f *fakePostRepo) FindPhotos(_ context.Context, postID uint64) ([]model.PostPhoto, error) {
	return f.photos[postID], nil
}

func (f *fakePostRepo) SetDB(*gorm.DB) {}

type fakeConvRepo struct {
	convs  map[uint64]*model.Conversation
	msgs   []model.Message
	nextID uint64
	msgID  uint64

	// missLookups simulates the resolver race: that many lookups miss
	// even though a concurrent create has already landed.
	missLookups int
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{convs: map[uint64]*model.Conversation{}}
}

func convKey(postID uint64, buyerUID string) string {
	return fmt.Sprintf("%d/%s", postID, buyerUID)
}

func (f *fakeConvRepo) FindByPostAndBuyer(_ context.Context, postID uint64, buyerUID string) (*model.Conversation, error) {
	if f.missLookups > 0 {
		f.missLookups--
		return nil, gorm.ErrRecordNotFound
	}
	for _, cv := range f.convs {
		if cv.PostID == postID && cv.BuyerUID == buyerUID {
			cp := *cv
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConvRepo) Create(_ context.Context, cv *model.Conversation) error {
	for _, existing := range f.convs {
		if existing.PostID == cv.PostID && existing.BuyerUID == cv.BuyerUID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	cv.ID = f.nextID
	cv.LastMessageAt = time.Now()
	cp := *cv
	f.convs[cv.ID] = &cp
	return nil
}

func (f *fakeConvRepo) FindByID(_ context.Context, id uint64) (*model.Conversation, error) {
	cv, ok := f.convs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *cv
	return &cp, nil
}

func (f *fakeConvRepo) FindByUser(_ context.Context, uid string) ([]model.Conversation, error) {
	var out []model.Conversation
	for _, cv := range f.convs {
		if cv.SellerUID == uid || cv.BuyerUID == uid {
			out = append(out, *cv)
		}
	}
	return out, nil
}

func (f *fakeConvRepo) CreateMessage(_ context.Context, msg *model.Message) error {
	f.msgID++
	msg.ID = f.msgID
	msg.CreatedAt = time.Now()
	f.msgs = append(f.msgs, *msg)
	if cv, ok := f.convs[msg.ConversationID]; ok {
		cv.LastMessageAt = msg.CreatedAt
	}
	return nil
}

func (f *fakeConvRepo) ListMessages(_ context.Context, convID uint64) ([]model.Message, error) {
	var out []model.Message
	for _, m := range f.msgs {
		if m.ConversationID == convID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeConvRepo) CountUnread(_ context.Context, convID uint64, uid string) (int64, error) {
	var n int64
	for _, m := range f.msgs {
		if m.ConversationID == convID && m.SenderUID != uid && !m.Read {
			n++
		}
	}
	return n, nil
}

func (f *fakeConvRepo) CountUnreadForUser(_ context.Context, uid string) (int64, error) {
	var n int64
	for _, m := range f.msgs {
		cv, ok := f.convs[m.ConversationID]
		if !ok {
			continue
		}
		if (cv.SellerUID == uid || cv.BuyerUID == uid) && m.SenderUID != uid && !m.Read {
			n++
		}
	}
	return n, nil
}

func (f *fakeConvRepo) MarkRead(_ context.Context, convID uint64, uid string) error {
	for i := range f.msgs {
		if f.msgs[i].ConversationID == convID && f.msgs[i].SenderUID != uid {
			f.msgs[i].Read = true
		}
	}
	return nil
}

func (f *fakeConvRepo) SetDB(*gorm.DB) {}

type fakeProfileRepo struct {
	profiles map[string]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*model.Profile{}}
}

func (f *fakeProfileRepo) FindByUID(_ context.Context, uid string) (*model.Profile, error) {
	p, ok := f.profiles[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, p *model.Profile) error {
	if existing, ok := f.profiles[p.UID]; ok {
		existing.DisplayName = p.DisplayName
		existing.AvatarURL = p.AvatarURL
		existing.Bio = p.Bio
		return nil
	}
	cp := *p
	f.profiles[p.UID] = &cp
	return nil
}

func (f *fakeProfileRepo) SetDB(*gorm.DB) {}

// fakeRatingRepo mirrors the transactional recompute: the upsert keyed
// by (post, buyer) and the seller aggregate move together.
type fakeRatingRepo struct {
	ratings  map[string]*model.SellerRating
	profiles *fakeProfileRepo
	nextID   uint64
}

func newFakeRatingRepo(profiles *fakeProfileRepo) *fakeRatingRepo {
	return &fakeRatingRepo{ratings: map[string]*model.SellerRating{}, profiles: profiles}
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *model.SellerRating) error {
	key := convKey(rating.PostID, rating.BuyerUID)
	if existing, ok := f.ratings[key]; ok {
		existing.Rating = rating.Rating
		existing.Review = rating.Review
		rating.ID = existing.ID
	} else {
		f.nextID++
		rating.ID = f.nextID
		cp := *rating
		f.ratings[key] = &cp
	}

	var sum float64
	var count int64
	for _, r := range f.ratings {
		if r.SellerUID == rating.SellerUID {
			sum += float64(r.Rating)
			count++
		}
	}
	if p, ok := f.profiles.profiles[rating.SellerUID]; ok {
		if count > 0 {
			p.SellerRating = sum / float64(count)
		} else {
			p.SellerRating = 0
		}
		p.SellerRatingCount = count
	}
	return nil
}

func (f *fakeRatingRepo) FindByPostAndBuyer(_ context.Context, postID uint64, buyerUID string) (*model.SellerRating, error) {
	r, ok := f.ratings[convKey(postID, buyerUID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRatingRepo) SetDB(*gorm.DB) {}

// fakeReviewRepo enforces one review per (place, author) the way the
// unique index does: a second submit replaces the stored row.
type fakeReviewRepo struct {
	reviews map[string]*model.RestaurantReview
	nextID  uint64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*model.RestaurantReview{}}
}

func reviewKey(placeID, authorUID string) string {
	return placeID + "/" + authorUID
}

func (f *fakeReviewRepo) Upsert(_ context.Context, review *model.RestaurantReview) error {
	key := reviewKey(review.PlaceID, review.AuthorUID)
	if existing, ok := f.reviews[key]; ok {
		existing.Rating = review.Rating
		existing.Body = review.Body
		existing.HalalTag = review.HalalTag
		review.ID = existing.ID
		return nil
	}
	f.nextID++
	review.ID = f.nextID
	cp := *review
	f.reviews[key] = &cp
	return nil
}

func (f *fakeReviewRepo) ListByPlace(_ context.Context, placeID string) ([]model.RestaurantReview, error) {
	var out []model.RestaurantReview
	for _, r := range f.reviews {
		if r.PlaceID == placeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) AverageByPlace(_ context.Context, placeID string) (float64, int64, error) {
	var sum float64
	var count int64
	for _, r := range f.reviews {
		if r.PlaceID == placeID {
			sum += float64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

func (f *fakeReviewRepo) SetDB(*gorm.DB) {}

type recordingPublisher struct {
	events []realtime.Event
}

func (p *recordingPublisher) Publish(ev realtime.Event) {
	p.events = append(p.events, ev)
}

type recordingNotifier struct {
	calls []string
}

func (n *recordingNotifier) NotifyMessage(_ context.Context, toUID, _, _ string, _ uint64) {
	n.calls = append(n.calls, toUID)
}
