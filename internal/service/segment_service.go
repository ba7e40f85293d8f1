package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
)

// SegmentResolver turns a declarative targeting rule into a concrete
// recipient list. Resolution is read-only; a failure aborts only the
// notification being resolved, never the surrounding run.
type SegmentResolver struct {
	audience *repository.AudienceRepository
}

func NewSegmentResolver(audience *repository.AudienceRepository) *SegmentResolver {
	return &SegmentResolver{audience: audience}
}

// ParseCriteria decodes the free-form target_criteria JSON column.
func ParseCriteria(raw string) map[string]interface{} {
	if raw == "" {
		return nil
	}
	var criteria map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return nil
	}
	return criteria
}

func (s *SegmentResolver) Resolve(segment string, criteria map[string]interface{}) ([]repository.RecipientContact, error) {
	switch segment {
	case domain.SegmentAll:
		return s.resolveAll()
	case domain.SegmentNewsletterSubscribers:
		return s.audience.ActiveSubscribers()
	case domain.SegmentNewCustomers:
		cutoff := time.Now().AddDate(0, 0, -domain.NewCustomerWindowDays)
		return s.audience.ProfilesCreatedSince(cutoff)
	case domain.SegmentHighValue:
		return s.audience.HighValueProfiles(minOrderValue(criteria))
	case domain.SegmentByLocation:
		city, _ := criteria["city"].(string)
		if city == "" {
			return nil, nil
		}
		return s.audience.ProfilesInCity(city)
	default:
		return nil, fmt.Errorf("unknown segment %q", segment)
	}
}

// resolveAll unions profiles and active subscribers, de-duplicated by
// email. The profile entry wins on name when both sources carry the
// same address.
func (s *SegmentResolver) resolveAll() ([]repository.RecipientContact, error) {
	profiles, err := s.audience.ProfilesWithEmail()
	if err != nil {
		return nil, err
	}
	subs, err := s.audience.ActiveSubscribers()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(profiles))
	out := make([]repository.RecipientContact, 0, len(profiles)+len(subs))
	for _, c := range profiles {
		key := strings.ToLower(c.Email)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	for _, c := range subs {
		key := strings.ToLower(c.Email)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

func minOrderValue(criteria map[string]interface{}) int64 {
	if criteria != nil {
		switch v := criteria["min_order_value"].(type) {
		case float64:
			if v > 0 {
				return int64(v)
			}
		case int:
			if v > 0 {
				return int64(v)
			}
		}
	}
	return domain.DefaultMinOrderValue
}
