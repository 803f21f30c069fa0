package util

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"comments-contract/config"
)

func LoadConfig(path string, config interface{}) {
	buf, err := os.ReadFile(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{"err": err, "path": path}).Fatal("fail to read config")
	}

	if err = yaml.Unmarshal(buf, config); err != nil {
		logrus.WithField("err", err).Fatal("fail to parse config yaml")
	}
}

// ApplyEnv loads .env when present and lets REWARDS_* variables override cfg.
func ApplyEnv(cfg *config.Conf, envFile string) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err = godotenv.Load(envFile); err != nil {
				logrus.WithFields(logrus.Fields{"err": err, "path": envFile}).Warn("fail to load env file")
			}
		}
	}
	if v := os.Getenv("REWARDS_DB_PATH"); v != "" {
		cfg.DbPath = v
	}
	if v := os.Getenv("REWARDS_BLOCK_LOG"); v != "" {
		cfg.BlockLog = v
	}
	if v := os.Getenv("REWARDS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			logrus.WithField("REWARDS_PORT", v).Warn("ignoring invalid port")
		} else {
			cfg.Port = port
		}
	}
}
