package mercury

import pkgmercury "github.com/goran-ethernal/MercuryBridge/pkg/mercury"

// Query catalog. Documents are sent to the backend verbatim.
var (
	Authenticate = pkgmercury.Query{
		Key: "authenticate",
		Document: `
mutation Authenticate($email: String!, $password: String!) {
  authenticate(input: {email: $email, password: $password}) {
    jwtToken
  }
}`,
	}

	SubscriptionByID = pkgmercury.Query{
		Key: "subscriptionById",
		Document: `
query GetSubById($id: ID!) {
  contractEventById(id: $id) {
    id
    data
    contractId
    ledgerTimestamp
    nodeId
    topic1
    topic2
    topic3
    topic4
  }
}`,
	}

	AllSubscriptions = pkgmercury.Query{
		Key: "allSubscriptions",
		Document: `
query AllSubscriptions {
  allContractEventSubscriptions {
    edges {
      node {
        contractId
      }
    }
  }
}`,
	}

	NewAccountSubscription = pkgmercury.Query{
		Key: "newAccountSubscription",
		Document: `
mutation NewAccountSubscription($pubKey: String!) {
  createFullAccountSubscription(
    input: {fullAccountSubscription: {publickey: $pubKey, userId: 1}}
  ) {
    clientMutationId
  }
}`,
	}

	GetAccountHistory = pkgmercury.Query{
		Key: "getAccountHistory",
		Document: `
query GetAccountHistory($publicKeyText: String!) {
  createAccountByPublicKey(publicKeyText: $publicKeyText) {
    edges {
      node {
        nodeId
      }
    }
  }
  createAccountToPublicKey(publicKeyText: $publicKeyText) {
    edges {
      node {
        nodeId
      }
    }
  }
  paymentsByPublicKey(publicKeyText: $publicKeyText) {
    edges {
      node {
        ...PaymentFields
      }
    }
  }
  paymentsToPublicKey(publicKeyText: $publicKeyText) {
    edges {
      node {
        ...PaymentFields
      }
    }
  }
}

fragment PaymentFields on Payment {
  amount
  assetNative
  accountBySource {
    publickey
  }
  accountByDestination {
    publickey
  }
}`,
	}
)

// Catalog lists every query by key.
var Catalog = map[string]pkgmercury.Query{
	Authenticate.Key:           Authenticate,
	SubscriptionByID.Key:       SubscriptionByID,
	AllSubscriptions.Key:       AllSubscriptions,
	NewAccountSubscription.Key: NewAccountSubscription,
	GetAccountHistory.Key:      GetAccountHistory,
}
