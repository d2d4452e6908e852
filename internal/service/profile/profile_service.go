package profile

import (
	"context"
	"errors"
	"sync"

	"seawatch/internal/model"
	pg "seawatch/internal/postgres"

	"gorm.io/gorm"
)

// ProfileService resolves fisher profiles by MMSI. Profiles are managed by
// the admin/identity collaborators; this core only reads them.
type ProfileService struct{}

var (
	profileServiceInstance *ProfileService
	profileServiceOnce     sync.Once
)

// GetProfileService returns the singleton instance of the ProfileService.
func GetProfileService() *ProfileService {
	profileServiceOnce.Do(func() {
		profileServiceInstance = &ProfileService{}
	})
	return profileServiceInstance
}

// ResolveByMMSI returns the profile owning the vessel, or nil when the MMSI
// is not registered to anyone.
func (s *ProfileService) ResolveByMMSI(ctx context.Context, mmsi string) (*model.FisherProfile, error) {
	db := pg.GetDB()

	var profile model.FisherProfile
	result := db.WithContext(ctx).Where("mmsi = ?", mmsi).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &profile, nil
}

// RegisteredMMSIs lists the MMSIs of all registered vessels, used to filter
// the AIS stream subscription.
func (s *ProfileService) RegisteredMMSIs(ctx context.Context) ([]string, error) {
	db := pg.GetDB()

	var mmsis []string
	result := db.WithContext(ctx).Model(&model.FisherProfile{}).Pluck("mmsi", &mmsis)
	if result.Error != nil {
		return nil, result.Error
	}
	return mmsis, nil
}
