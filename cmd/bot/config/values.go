package config

import "time"

const (
	// AppName is the name of the application.
	AppName = "ticketeer"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `DISCORD_TOKEN`

	// EnvClientId is the environment variable for the application ID.
	EnvClientId = `CLIENT_ID`

	// EnvGuildId is the environment variable for the server the bot operates in.
	EnvGuildId = `GUILD_ID`

	// EnvOwnerIds is the environment variable for the comma separated owner user IDs.
	EnvOwnerIds = `OWNER_IDS`

	EnvAdminRole   = `ADMIN_ROLE`
	EnvSellerRole  = `SELLER_ROLE`
	EnvBuyerRole   = `BUYER_ROLE`
	EnvSupportRole = `SUPPORT_ROLE`

	// EnvDataDir is the environment variable for the directory the documents are stored in.
	EnvDataDir = `DATA_DIR`

	// EnvAutosaveInterval is the environment variable for the autosave interval, as a Go duration.
	EnvAutosaveInterval = `AUTOSAVE_INTERVAL`

	// EnvLanguage is the environment variable for the message catalog language.
	EnvLanguage = `LANGUAGE`

	// EnvMongoUri is the environment variable for the MongoDB URI. Optional.
	EnvMongoUri = `MONGO_URI`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`
)

const (
	defaultAdminRole   = "Admin"
	defaultSellerRole  = "Seller"
	defaultBuyerRole   = "Buyer"
	defaultSupportRole = "Support"

	defaultDataDir          = "data"
	defaultAutosaveInterval = 5 * time.Minute
	defaultLanguage         = "en"
	defaultMonitoringPort   = "8080"

	defaultActiveCategory  = "Active Tickets"
	defaultClosedCategory  = "Closed Tickets"
	defaultArchiveCategory = "Archived Tickets"

	defaultColor        = 0x00AE86
	defaultProductColor = 0xFF6B6B
	defaultSuccessColor = 0x2ECC71
	defaultWarningColor = 0xF39C12
	defaultErrorColor   = 0xE74C3C

	defaultDeleteDelay    = 5 * time.Second
	defaultConfirmTimeout = 30 * time.Second

	// A user may open two tickets back to back, then one every ten seconds.
	defaultTicketRateInterval = 10 * time.Second
	defaultTicketRateBurst    = 2
)
