package saleor

// GraphQL documents for the operations the storefront uses. The user and
// product selections match the shapes in internal/app/model.

const userFragment = `
fragment UserFields on User {
  id
  email
  firstName
  lastName
  isActive
  dateJoined
  defaultShippingAddress {
    id
    firstName
    lastName
    streetAddress1
    streetAddress2
    city
    postalCode
    country {
      code
      country
    }
  }
  defaultBillingAddress {
    id
    firstName
    lastName
    streetAddress1
    streetAddress2
    city
    postalCode
    country {
      code
      country
    }
  }
}`

const productFragment = `
fragment ProductCard on Product {
  id
  name
  slug
  thumbnail {
    url
  }
  category {
    id
    name
    slug
  }
  pricing {
    priceRange {
      start {
        gross {
          amount
          currency
        }
      }
    }
  }
}`

const tokenCreateMutation = `
mutation TokenCreate($email: String!, $password: String!) {
  tokenCreate(email: $email, password: $password) {
    token
    refreshToken
    user {
      ...UserFields
    }
    errors {
      field
      message
      code
    }
  }
}` + userFragment

const tokenRefreshMutation = `
mutation TokenRefresh($refreshToken: String!) {
  tokenRefresh(refreshToken: $refreshToken) {
    token
    user {
      ...UserFields
    }
    errors {
      field
      message
      code
    }
  }
}` + userFragment

const accountRegisterMutation = `
mutation AccountRegister($input: AccountRegisterInput!) {
  accountRegister(input: $input) {
    user {
      id
      email
    }
    errors {
      field
      message
      code
    }
  }
}`

const accountUpdateMutation = `
mutation AccountUpdate($input: AccountInput!) {
  accountUpdate(input: $input) {
    user {
      ...UserFields
    }
    errors {
      field
      message
      code
    }
  }
}` + userFragment

const passwordChangeMutation = `
mutation PasswordChange($oldPassword: String!, $newPassword: String!) {
  passwordChange(oldPassword: $oldPassword, newPassword: $newPassword) {
    errors {
      field
      message
      code
    }
  }
}`

const meQuery = `
query Me {
  me {
    ...UserFields
  }
}` + userFragment

const productsQuery = `
query Products($first: Int!, $channel: String!) {
  products(first: $first, channel: $channel) {
    edges {
      node {
        ...ProductCard
      }
    }
  }
}` + productFragment

const productBySlugQuery = `
query ProductBySlug($slug: String!, $channel: String!) {
  product(slug: $slug, channel: $channel) {
    ...ProductCard
    description
    variants {
      id
      name
      pricing {
        price {
          gross {
            amount
            currency
          }
        }
      }
    }
  }
}` + productFragment

const categoriesQuery = `
query Categories($first: Int!) {
  categories(first: $first) {
    edges {
      node {
        id
        name
        slug
        backgroundImage {
          url
        }
      }
    }
  }
}`

const categoryBySlugQuery = `
query CategoryBySlug($slug: String!, $first: Int!, $channel: String!) {
  category(slug: $slug) {
    id
    name
    slug
    backgroundImage {
      url
    }
    products(first: $first, channel: $channel) {
      edges {
        node {
          ...ProductCard
        }
      }
    }
  }
}` + productFragment

const searchProductsQuery = `
query SearchProducts($query: String!, $first: Int!, $channel: String!) {
  products(first: $first, channel: $channel, filter: { search: $query }) {
    edges {
      node {
        ...ProductCard
      }
    }
  }
}` + productFragment
