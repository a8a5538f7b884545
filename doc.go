// Package gbce implements a tiny stock exchange: the Global Beverage
// Corporation Exchange.
//
// The exchange keeps two things:
//   - a listing of securities, either common or preferred stock, each one
//     carrying the static data needed to compute its dividend yield and its
//     price/earnings ratio at a given market price,
//   - a ledger of executed trades. Trades are never removed, and every trade
//     updates the last trade price of the security it was made on.
//
// From the ledger the exchange derives two indicators: the volume weighted
// stock price of a security over a trailing window (15 minutes by default),
// and the all-share index, the geometric mean of the last trade prices of
// every listed security.
//
// The Exchange is the only entry point that mutates state. Securities
// returned by the exchange are shared, but their last trade price can only be
// changed by executing a trade.
package gbce
