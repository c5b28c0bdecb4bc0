package domain

// Table is a mongo collection name
type Table string

const (
	TableAuctions       Table = "auctions"
	TableActiveAuctions Table = "active_auctions"
	TableAuctionEvents  Table = "auction_events"
	TableCounters       Table = "counters"
	TableLedgerEntries  Table = "ledger_entries"
	TableLedgerBalances Table = "ledger_balances"
	TableAccounts       Table = "accounts"
)
