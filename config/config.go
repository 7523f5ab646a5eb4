package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	Redis     RedisConfigs
	RandomOrg RandomOrgConfigs
	Draw      DrawConfigs
	LogLevel  int
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type RandomOrgConfigs struct {
	APIKey    string        `toml:"api_key"`
	Endpoints []string      `toml:"endpoints"`
	Timeout   time.Duration `toml:"timeout"`
}

type DrawConfigs struct {
	// ListHashAlgo selects the digest of the participant-list commitment.
	// Either "sha256" (default) or "sha1" for legacy verification tooling.
	ListHashAlgo string `toml:"list_hash_algo"`
}
