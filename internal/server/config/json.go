package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/stashboard/internal/flagx"
	"github.com/dmitrijs2005/stashboard/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "1m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	Storage                     string         `json:"storage"`
	DatabaseDSN                 string         `json:"database_dsn"`
	FirestoreProject            string         `json:"firestore_project"`
	SecretKey                   string         `json:"secret_key"`
	SecretKeyName               string         `json:"secret_key_name"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	PubSubProject               string         `json:"pubsub_project"`
	PubSubTopic                 string         `json:"pubsub_topic"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	HistoryDays                 int            `json:"history_days"`
	PublicURL                   string         `json:"public_url"`
}

// parseJson overlays values from the file named by -c / -config onto config.
// Nothing happens when no file is given. Keys missing from the file keep
// their current value. An unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.Storage, c.Storage)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.FirestoreProject, c.FirestoreProject)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.SecretKeyName, c.SecretKeyName)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setString(&config.PubSubProject, c.PubSubProject)
	setString(&config.PubSubTopic, c.PubSubTopic)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.HistoryDays != 0 {
		config.HistoryDays = c.HistoryDays
	}
	setString(&config.PublicURL, c.PublicURL)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
