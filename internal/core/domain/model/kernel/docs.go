// Package kernel provides shared value objects used across the domain model:
//
//   - UUID: opaque unique identifier for parcels, wrapping github.com/google/uuid.
//     The parcel UUID doubles as the barcode payload printed on labels.
//   - TrackingNumber: human-presentable secondary identifier (TRK-NNNNNN).
//   - SessionKey: short human-typeable token pairing a scanning device with a
//     stationary actor (one uppercase letter followed by five digits).
//
// All three are immutable value objects whose zero values fail Validate,
// forcing construction through the provided factory functions.
package kernel
