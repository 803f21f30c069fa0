package config

var Cfg Conf

type Conf struct {
	Port         int          `yaml:"port"`
	DbPath       string       `yaml:"db_path"`
	DbTailFix    string       `yaml:"db_tail_fix"`
	CacheSize    int          `yaml:"cache_size"`
	BlockLog     string       `yaml:"block_log"`
	SnapshotCron string       `yaml:"snapshot_cron"`
	Contract     ContractConf `yaml:"contract"`
	Log          LogConf      `yaml:"log"`
	Genesis      Genesis      `yaml:"genesis"`
}

type ContractConf struct {
	Name         string `yaml:"name"`
	Owner        string `yaml:"owner"`
	RelayAccount string `yaml:"relay_account"`
	FeeSymbol    string `yaml:"fee_symbol"`
	BurnAccount  string `yaml:"burn_account"`
}

type LogConf struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type Genesis struct {
	Tokens   []GenesisToken   `yaml:"tokens"`
	Balances []GenesisBalance `yaml:"balances"`
}

type GenesisToken struct {
	Symbol         string `yaml:"symbol"`
	Issuer         string `yaml:"issuer"`
	Precision      int32  `yaml:"precision"`
	StakingEnabled bool   `yaml:"staking_enabled"`
}

type GenesisBalance struct {
	Account string `yaml:"account"`
	Symbol  string `yaml:"symbol"`
	Balance string `yaml:"balance"`
	Stake   string `yaml:"stake"`
}

// SetDefaults fills every unset field with its default value.
func (c *Conf) SetDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.DbPath == "" {
		c.DbPath = "."
	}
	if c.DbTailFix == "" {
		c.DbTailFix = "main"
	}
	if c.SnapshotCron == "" {
		c.SnapshotCron = "0 0 * * * *"
	}
	if c.Contract.Name == "" {
		c.Contract.Name = "comments"
	}
	if c.Contract.Owner == "" {
		c.Contract.Owner = "hive-engine"
	}
	if c.Contract.RelayAccount == "" {
		c.Contract.RelayAccount = "null"
	}
	if c.Contract.FeeSymbol == "" {
		c.Contract.FeeSymbol = "BEE"
	}
	if c.Contract.BurnAccount == "" {
		c.Contract.BurnAccount = "null"
	}
}
