// Package queries holds the fixed set of GraphQL documents used against the
// Cirrus CI API, plus the repository lookup and build creation operations and
// the read-only projections decoded from their replies.
//
// The document shapes follow the Cirrus CI schema:
// https://github.com/cirruslabs/cirrus-ci-web/blob/master/schema.gql
package queries

// RepoQuery resolves a GitHub owner/name pair to the internal repository id.
const RepoQuery = `
    query GetRepo($owner: String!, $repo: String!) {
        ownerRepository(platform: "github", owner: $owner, name: $repo) {
            id
            name
        }
    }
`

// CreateBuildMutation schedules a build with an explicit config override. The
// clientMutationId acts as an idempotency token so the service can deduplicate
// retried creation requests.
const CreateBuildMutation = `
    mutation ScheduleCustomBuild($config: String!,
                                 $repo: ID!,
                                 $branch: String!,
                                 $mutation_id: String!) {
        createBuild(
            input: {
                repositoryId: $repo,
                branch: $branch,
                clientMutationId: $mutation_id,
                configOverride: $config
            }
        ) {
            build {
                id
                status
            }
        }
    }
`

// BuildStatusQuery fetches the current build status together with every task
// notification, so a confirmed failure can be checked for the credits message
// without a second round trip.
const BuildStatusQuery = `
    query GetBuild($build: ID!) {
        build(id: $build) {
            status
            tasks {
                notifications {
                    message
                }
            }
        }
    }
`

// BuildTasksQuery fetches the ordered task/command tree of a build for log
// retrieval.
const BuildTasksQuery = `
    query GetBuildLog($build: ID!) {
        build(id: $build) {
            tasks {
                id
                name
                commands {
                    name
                }
            }
        }
    }
`
