package cron

import (
	"os"
	"testing"

	cronv3 "github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"k8s.io/client-go/kubernetes"

	"github.com/replyradar/replyradar/config"
	"github.com/replyradar/replyradar/internal/logger"
)

type mockKubernetesInterface struct {
	kubernetes.Interface
	mock.Mock
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestNewCronManager(t *testing.T) {
	// Arrange
	cfg := &config.Config{
		Logger: &logger.Config{
			LogLevel: "info",
		},
	}
	log := getLogger()
	k8s := &mockKubernetesInterface{}

	// Act
	cm := NewCronManager(cfg, log, k8s, nil)

	// Assert
	assert.NotNil(t, cm)
	assert.Equal(t, cfg, cm.cfg)
	assert.Equal(t, log, cm.log)
	assert.Equal(t, k8s, cm.k8s)
	assert.NotNil(t, cm.jobIDs)
}

func TestCronManager_StartCron(t *testing.T) {
	// Disable the fleet sync job so StartCron needs no sync service
	os.Setenv("CRON_SCHEDULE_FLEET_SYNC", "")
	defer os.Unsetenv("CRON_SCHEDULE_FLEET_SYNC")

	cfg := &config.Config{
		Logger: &logger.Config{
			LogLevel: "info",
		},
	}
	cm := NewCronManager(cfg, getLogger(), nil, nil)

	cm.StartCron()
	defer cm.Stop()

	assert.NotNil(t, cm.cron)
	assert.Contains(t, cm.jobIDs, "heartbeat")
	assert.NotContains(t, cm.jobIDs, "fleet_sync")
}

func TestCronManager_RegisterJobsSchedules(t *testing.T) {
	os.Setenv("CRON_SCHEDULE_HEARTBEAT", "0 * * * * *")
	os.Setenv("CRON_SCHEDULE_FLEET_SYNC", "0 */5 * * * *")
	defer os.Unsetenv("CRON_SCHEDULE_HEARTBEAT")
	defer os.Unsetenv("CRON_SCHEDULE_FLEET_SYNC")

	cfg := &config.Config{
		Logger: &logger.Config{
			LogLevel: "info",
		},
	}
	cm := NewCronManager(cfg, getLogger(), nil, nil)

	c := cronv3.New(cronv3.WithSeconds())
	cm.registerJobs(c)

	assert.Contains(t, cm.jobIDs, "heartbeat")
	assert.Contains(t, cm.jobIDs, "fleet_sync")
	assert.Len(t, c.Entries(), 2)
}
