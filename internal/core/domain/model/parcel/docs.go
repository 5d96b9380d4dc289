// Package parcel provides the domain model for tracked packages: the Parcel
// aggregate root, its append-only Checkpoint history, and the mapping from
// internal scan actions to customer-facing public statuses.
//
// Key business rules:
//   - Every parcel starts with a synthetic checkpoint #1 ("Front Desk",
//     "Order Created") recorded at creation time.
//   - Checkpoints are append-only, 1-based, gapless and never reordered;
//     the parcel's current public status always equals the public status of
//     its last checkpoint.
//   - Checkpoint timestamps are monotonically non-decreasing within a parcel.
//   - The workflow graph is open: any action is accepted from any prior
//     status. The action-to-status table constrains which public labels are
//     reachable, with "In Transit" as the fallback for unknown actions.
//     Terminality of Delivered/Returned to Sender is a caller convention
//     unless the optional strict-terminal policy is enabled at a higher layer.
package parcel
