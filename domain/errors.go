package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
	ErrInvalidNonce     = errors.New("Invalid or expired nonce")
)

// Auction taxonomy. Messages keep the wording the original contracts
// reverted with so existing clients keep matching on them.
var (
	// Unauthorized
	ErrOnlyOwner        = errors.New("Only owner can perform this operation.")
	ErrNotTokenHolder   = errors.New("Auction can only be deployed by the owner of the token.")
	ErrNotHighestBidder = errors.New("Only the highest bidder can withdraw the auction item.")

	// InvalidState
	ErrAuctionNotLive      = errors.New("Auction is not live.")
	ErrAlreadyStarted      = errors.New("Auction's already started")
	ErrAlreadyTerminal     = errors.New("Auction has already ended or was cancelled.")
	ErrAuctionNotSettled   = errors.New("Auction did not end or was cancelled.")
	ErrAuctionNotEnded     = errors.New("Auction must be ended for this operation.")
	ErrAuctionNotCancelled = errors.New("Auction must be cancelled for this operation.")
	ErrItemWithdrawn       = errors.New("Auction item has already been withdrawn.")

	// DuplicateActiveAuction
	ErrDuplicateActiveAuction = errors.New("There is already a non-ended auction with given token address and ID")

	// BelowFloor
	ErrBidBelowFloor = errors.New("Cannot send bid less than floor price.")

	// NoFunds
	ErrNoBidsToWithdraw = errors.New("Sender has no bids to withdraw.")
	ErrZeroWithdrawal   = errors.New("Withdrawal amount cannot be 0.")

	// IndexOutOfRange
	ErrIndexOutOfRange = errors.New("Auction index out of range")

	// escrow ledger
	ErrInsufficientFunds = errors.New("Insufficient escrow balance")
)
