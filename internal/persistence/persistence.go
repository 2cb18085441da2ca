package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/settings"
	"github.com/markusressel/heat2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketScheduleDrafts = "scheduleDrafts"
	BucketSettingsDrafts = "settingsDrafts"
)

// ScheduleDraft is a schedule that was fetched from a device and possibly edited,
// but not yet submitted.
type ScheduleDraft struct {
	SelectedDay int             `json:"selectedDay"`
	Schedule    device.Schedule `json:"schedule"`
	FetchedAt   time.Time       `json:"fetchedAt"`
}

// SettingsDraft holds the form fields of a settings document that was not yet submitted.
type SettingsDraft struct {
	Fields      settings.MemorySink   `json:"fields"`
	Diagnostics []settings.Diagnostic `json:"diagnostics,omitempty"`
	FetchedAt   time.Time             `json:"fetchedAt"`
}

// Persistence stores drafts per device, identified by its base url.
type Persistence interface {
	Init() error

	LoadScheduleDraft(deviceUrl string) (*ScheduleDraft, error)
	SaveScheduleDraft(deviceUrl string, draft ScheduleDraft) error
	DeleteScheduleDraft(deviceUrl string) error

	LoadSettingsDraft(deviceUrl string) (*SettingsDraft, error)
	SaveSettingsDraft(deviceUrl string, draft SettingsDraft) error
	DeleteSettingsDraft(deviceUrl string) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// LoadScheduleDraft returns os.ErrNotExist if there is no draft for the given device.
func (p persistence) LoadScheduleDraft(deviceUrl string) (*ScheduleDraft, error) {
	var draft ScheduleDraft
	err := p.load(BucketScheduleDrafts, deviceUrl, &draft)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (p persistence) SaveScheduleDraft(deviceUrl string, draft ScheduleDraft) error {
	return p.save(BucketScheduleDrafts, deviceUrl, draft)
}

func (p persistence) DeleteScheduleDraft(deviceUrl string) error {
	return p.delete(BucketScheduleDrafts, deviceUrl)
}

// LoadSettingsDraft returns os.ErrNotExist if there is no draft for the given device.
func (p persistence) LoadSettingsDraft(deviceUrl string) (*SettingsDraft, error) {
	var draft SettingsDraft
	err := p.load(BucketSettingsDrafts, deviceUrl, &draft)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (p persistence) SaveSettingsDraft(deviceUrl string, draft SettingsDraft) error {
	return p.save(BucketSettingsDrafts, deviceUrl, draft)
}

func (p persistence) DeleteSettingsDraft(deviceUrl string) error {
	return p.delete(BucketSettingsDrafts, deviceUrl)
}

func (p persistence) save(bucket string, key string, value interface{}) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(key), data)
	})
}

func (p persistence) load(bucket string, key string, value interface{}) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	corrupt := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(key))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, value)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved %s data for %s: %v", bucket, key, err)
			corrupt = true
			err := b.Delete([]byte(key))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", key, err)
			}
			return nil
		}
		return nil
	})
	if err == nil && corrupt {
		return os.ErrNotExist
	}
	return err
}

func (p persistence) delete(bucket string, key string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			// no bucket yet
			return nil
		}
		return b.Delete([]byte(key))
	})
}
